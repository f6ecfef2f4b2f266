package config

//go:generate go tool go-enum --names --marshal

// Encoding of the rendered layout preview.
// ENUM(png, jpeg)
type PreviewFmt int

func (p PreviewFmt) Ext() string {
	switch p {
	case PreviewFmtPng:
		return ".png"
	case PreviewFmtJpeg:
		return ".jpg"
	default:
		// this should never happen
		panic("unsupported preview format requested")
	}
}
