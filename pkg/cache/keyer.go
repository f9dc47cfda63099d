package cache

// Keyer derives cache keys from an input hash and the options that shape
// the output.
type Keyer interface {
	// ArtifactKey names a rendered diagram (SVG, PNG, DOT).
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
	// ConvertKey names serialized GFA text produced from the inputs.
	ConvertKey(inputHash string, opts ConvertKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Version string `json:"version,omitempty"`
	Labels  bool   `json:"labels,omitempty"`
}

// ConvertKeyOpts are the conversion options that change serialized output.
type ConvertKeyOpts struct {
	Block   bool   `json:"block,omitempty"`
	Version string `json:"version,omitempty"`
	Walks   bool   `json:"walks,omitempty"`
}

// DefaultKeyer hashes the input hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

// ConvertKey returns "convert:<sha256>".
func (DefaultKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return hashKey("convert", inputHash, opts)
}
