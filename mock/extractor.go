package mock

import "github.com/connexin/atlascrape"

var _ atlascrape.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of atlascrape.Extractor.
type Extractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *Extractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
