package paper

import (
	"fmt"
	"strings"
)

// SourceType identifies which site markup a source URL serves.
type SourceType string

const (
	// SourcePubMed is the PubMed literature database search page.
	SourcePubMed SourceType = "pubmed"
	// SourceBioRxiv is the bioRxiv preprint server search page.
	SourceBioRxiv SourceType = "biorxiv"
	// SourceMedRxiv is the medRxiv preprint server search page.
	SourceMedRxiv SourceType = "medrxiv"
	// SourceNature is the nature.com publisher search index.
	SourceNature SourceType = "nature"
	// SourceClinicalTrials is the ClinicalTrials.gov RSS feed.
	SourceClinicalTrials SourceType = "clinicaltrials"
	// SourceArXiv is the arXiv Atom API feed.
	SourceArXiv SourceType = "arxiv"
	// SourceScholar is the Google Scholar aggregator results page.
	SourceScholar SourceType = "scholar"
)

// sourceInfo describes the fixed properties of a source type.
type sourceInfo struct {
	label   string
	keyword string
}

var sourceInfos = map[SourceType]sourceInfo{
	SourcePubMed:         {label: "PubMed", keyword: "pubmed"},
	SourceBioRxiv:        {label: "bioRxiv", keyword: "biorxiv"},
	SourceMedRxiv:        {label: "medRxiv", keyword: "medrxiv"},
	SourceNature:         {label: "Nature", keyword: "nature.com"},
	SourceClinicalTrials: {label: "ClinicalTrials.gov", keyword: "clinicaltrials"},
	SourceArXiv:          {label: "arXiv", keyword: "arxiv"},
	SourceScholar:        {label: "Google Scholar", keyword: "scholar.google"},
}

// SourceTypes lists every known source type in detection order.
func SourceTypes() []SourceType {
	return []SourceType{
		SourcePubMed,
		SourceBioRxiv,
		SourceMedRxiv,
		SourceNature,
		SourceClinicalTrials,
		SourceArXiv,
		SourceScholar,
	}
}

// ParseSourceType converts a configured type name into a SourceType.
func ParseSourceType(s string) (SourceType, error) {
	t := SourceType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sourceInfos[t]; !ok {
		return "", fmt.Errorf("unknown source type %q", s)
	}
	return t, nil
}

// Label returns the display tag stored in Record.Source.
func (t SourceType) Label() string {
	if info, ok := sourceInfos[t]; ok {
		return info.label
	}
	return string(t)
}

// Keyword returns the URL substring that identifies the source type.
func (t SourceType) Keyword() string {
	return sourceInfos[t].keyword
}

// DetectSourceType returns the first source type whose keyword occurs in the URL.
// Matching is case-insensitive and follows SourceTypes order.
func DetectSourceType(rawURL string) (SourceType, bool) {
	lower := strings.ToLower(rawURL)
	for _, t := range SourceTypes() {
		if strings.Contains(lower, t.Keyword()) {
			return t, true
		}
	}
	return "", false
}
