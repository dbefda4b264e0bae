package atlascrape

// Extractor converts storage-format HTML to plain text.
type Extractor interface {
	// ExtractText strips markup from HTML and returns the remaining text
	// with whitespace collapsed. Malformed input should degrade rather
	// than error wherever possible.
	ExtractText(html string) (string, error)
}
