package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/model"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/port"
	"github.com/Adis-git/job-sentinel-ai-check/internal/domain/valueobject"
)

// Parse extracts a posting from html using sel. When title, company or
// description is missing the partial extraction is returned together with
// an error wrapping port.ErrIncompleteExtraction.
func Parse(site valueobject.JobSite, url, html string, sel Selectors) (port.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return port.Extraction{}, fmt.Errorf("parse html: %w", err)
	}

	var salary *string
	if s := firstText(doc, sel.Salary); s != "" {
		salary = &s
	}

	posting := model.NewJobPosting(
		firstText(doc, sel.Title),
		firstText(doc, sel.Company),
		firstText(doc, sel.Description),
		firstText(doc, sel.Location),
		salary,
	)

	extraction := port.Extraction{Site: site, URL: url, Posting: posting}

	var missing []string
	if posting.Title == "" {
		missing = append(missing, "title")
	}
	if posting.Company == "" {
		missing = append(missing, "company")
	}
	if posting.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return extraction, fmt.Errorf("%w: missing %s", port.ErrIncompleteExtraction, strings.Join(missing, ", "))
	}

	return extraction, nil
}

// firstText returns the cleaned text of the first element matching selector.
func firstText(doc *goquery.Document, selector string) string {
	if selector == "" {
		return ""
	}
	return CleanText(doc.Find(selector).First().Text())
}

// CleanText collapses runs of whitespace to single spaces, trims, and
// normalises to NFC.
func CleanText(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
