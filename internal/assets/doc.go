// Package assets provides the stylesheets and the page envelope template used
// by standalone HTML output.
//
// Assets are embedded in the binary. A custom asset directory can override any
// of them; lookups fall back to the embedded copy when the custom directory
// does not provide a file. A custom directory is laid out as:
//
//	<dir>/styles/<name>.css
//	<dir>/templates/<name>.html
package assets
