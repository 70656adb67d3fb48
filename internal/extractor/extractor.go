package extractor

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/lakshitcodes/DocuMed/internal/paper"
)

// errFieldMissing marks an item whose required field is absent or empty.
var errFieldMissing = errors.New("required field missing")

// Extractor turns one fetched source document into paper records.
// An error means the document as a whole could not be parsed; items with
// missing fields are skipped without error.
type Extractor interface {
	Extract(doc []byte, pageURL string) ([]paper.Record, error)
}

// Registry maps each source type to its extractor.
type Registry map[paper.SourceType]Extractor

// NewRegistry returns a registry with an extractor for every known source type.
func NewRegistry() Registry {
	return Registry{
		paper.SourcePubMed:         NewPubMed(),
		paper.SourceBioRxiv:        NewBioRxiv(),
		paper.SourceMedRxiv:        NewMedRxiv(),
		paper.SourceNature:         NewNature(),
		paper.SourceScholar:        NewScholar(),
		paper.SourceClinicalTrials: NewFeed(paper.SourceClinicalTrials),
		paper.SourceArXiv:          NewFeed(paper.SourceArXiv),
	}
}

// For returns the extractor registered for t.
func (r Registry) For(t paper.SourceType) (Extractor, error) {
	ex, ok := r[t]
	if !ok {
		return nil, fmt.Errorf("no extractor registered for source type %q", t)
	}
	return ex, nil
}

// Resolve picks the source type for a configured source: the explicit type
// when set, otherwise keyword detection on the URL.
func Resolve(explicit paper.SourceType, sourceURL string) (paper.SourceType, error) {
	if explicit != "" {
		return explicit, nil
	}
	t, ok := paper.DetectSourceType(sourceURL)
	if !ok {
		return "", fmt.Errorf("no source type matches url %q", sourceURL)
	}
	return t, nil
}

// cleanText trims s and collapses internal whitespace runs to a single space.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// resolveURL resolves href against pageURL. An empty or unparseable href
// falls back to the page URL.
func resolveURL(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return pageURL
	}
	ref, err := url.Parse(href)
	if err != nil {
		return pageURL
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
