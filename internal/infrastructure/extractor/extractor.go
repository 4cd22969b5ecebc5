package extractor

import (
	"context"
	"fmt"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

// Extractor implements port.PostingExtractor over a selector table.
type Extractor struct {
	fetcher   Fetcher
	selectors SelectorTable
}

var _ port.PostingExtractor = (*Extractor)(nil)

// New creates an Extractor. fetcher may be nil when only ExtractHTML is used.
func New(fetcher Fetcher, selectors SelectorTable) *Extractor {
	if selectors == nil {
		selectors = DefaultSelectors()
	}
	return &Extractor{fetcher: fetcher, selectors: selectors}
}

// Extract fetches url and extracts the posting.
func (e *Extractor) Extract(ctx context.Context, url string) (port.Extraction, error) {
	site, sel, err := e.lookup(url)
	if err != nil {
		return port.Extraction{}, err
	}
	if e.fetcher == nil {
		return port.Extraction{}, fmt.Errorf("no page fetcher configured")
	}

	html, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return port.Extraction{Site: site, URL: url}, err
	}

	return Parse(site, url, html, sel)
}

// ExtractHTML extracts the posting from an already fetched page.
func (e *Extractor) ExtractHTML(url, html string) (port.Extraction, error) {
	site, sel, err := e.lookup(url)
	if err != nil {
		return port.Extraction{}, err
	}
	return Parse(site, url, html, sel)
}

func (e *Extractor) lookup(url string) (valueobject.JobSite, Selectors, error) {
	site, err := valueobject.JobSiteFromURL(url)
	if err != nil {
		return valueobject.JobSite{}, Selectors{}, fmt.Errorf("%w: %s", err, url)
	}
	sel, ok := e.selectors[site.String()]
	if !ok {
		return valueobject.JobSite{}, Selectors{}, fmt.Errorf("%w: no selectors for %s", valueobject.ErrUnsupportedSite, site)
	}
	return site, sel, nil
}
