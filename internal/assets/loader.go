package assets

// AssetLoader loads named stylesheets and templates.
type AssetLoader interface {
	// LoadStyle returns the CSS for name (without the .css extension).
	// Returns ErrStyleNotFound if the style does not exist and
	// ErrInvalidAssetName if name is not a plain file name.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns the template source for name (without the .html
	// extension). Returns ErrTemplateNotFound if the template does not exist
	// and ErrInvalidAssetName if name is not a plain file name.
	LoadTemplate(name string) (string, error)
}

// DefaultStyleName is the built-in stylesheet used when none is configured.
const DefaultStyleName = "default"

// EnvelopeTemplateName is the template that frames standalone documents.
const EnvelopeTemplateName = "envelope"
