// Package document defines the intermediate tree that every Reader produces
// and every Writer consumes.
//
// A Document owns its nodes exclusively: there is no sharing between trees and
// no cycles. Block and Inline are closed variants; the unexported marker
// methods keep foreign types out so Writers can switch exhaustively.
package document
