package assets

import "errors"

var (
	// ErrStyleNotFound indicates the requested style does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidTemplate indicates a template failed to parse or lacks a
	// required section.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrInvalidAssetName indicates the asset name contains path separators,
	// dots or is empty.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the custom asset directory is unusable.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates a resolved path escapes the base directory.
	ErrPathTraversal = errors.New("path traversal detected")
)

// isNotFound reports whether err means the asset is absent, as opposed to
// invalid or unreadable.
func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateNotFound)
}
