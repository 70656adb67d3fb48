package extractor

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/lakshitcodes/DocuMed/internal/paper"
)

// field lists candidate selectors for one item field, tried in order.
type field struct {
	selectors []string
	// attr, when set, is preferred over the element text (e.g. time[datetime]).
	attr string
}

// htmlLayout describes the markup of a listing page.
type htmlLayout struct {
	source    paper.SourceType
	container string
	title     field
	abstract  field
	date      field
}

// HTMLExtractor extracts records from a search-results listing page.
type HTMLExtractor struct {
	layout htmlLayout
}

// NewPubMed returns the extractor for PubMed search result pages.
func NewPubMed() *HTMLExtractor {
	return &HTMLExtractor{layout: htmlLayout{
		source:    paper.SourcePubMed,
		container: "article.full-docsum",
		title:     field{selectors: []string{"a.docsum-title"}},
		abstract:  field{selectors: []string{"div.full-view-snippet"}},
		date:      field{selectors: []string{"span.docsum-journal-citation"}},
	}}
}

// NewBioRxiv returns the extractor for bioRxiv search result pages.
func NewBioRxiv() *HTMLExtractor {
	return &HTMLExtractor{layout: highwireLayout(paper.SourceBioRxiv)}
}

// NewMedRxiv returns the extractor for medRxiv search result pages.
func NewMedRxiv() *HTMLExtractor {
	return &HTMLExtractor{layout: highwireLayout(paper.SourceMedRxiv)}
}

// bioRxiv and medRxiv share the HighWire listing markup.
func highwireLayout(source paper.SourceType) htmlLayout {
	return htmlLayout{
		source:    source,
		container: "li.search-result",
		title:     field{selectors: []string{"span.highwire-cite-title a", "a.highwire-cite-linked-title"}},
		abstract:  field{selectors: []string{"div.highwire-cite-snippet", "div.highwire-cite-metadata"}},
		date:      field{selectors: []string{"span.highwire-cite-metadata-journal", "span.highwire-cite-metadata-pages"}},
	}
}

// NewNature returns the extractor for nature.com search listings.
func NewNature() *HTMLExtractor {
	return &HTMLExtractor{layout: htmlLayout{
		source:    paper.SourceNature,
		container: "li.app-article-list-row__item",
		title:     field{selectors: []string{"h3 a"}},
		abstract:  field{selectors: []string{`div[data-test="article-description"]`}},
		date:      field{selectors: []string{"time"}, attr: "datetime"},
	}}
}

// NewScholar returns the extractor for Google Scholar result pages.
func NewScholar() *HTMLExtractor {
	return &HTMLExtractor{layout: htmlLayout{
		source:    paper.SourceScholar,
		container: "div.gs_ri",
		title:     field{selectors: []string{"h3.gs_rt a"}},
		abstract:  field{selectors: []string{"div.gs_rs"}},
		date:      field{selectors: []string{"div.gs_a"}},
	}}
}

// Source returns the source type this extractor handles.
func (e *HTMLExtractor) Source() paper.SourceType {
	return e.layout.source
}

// Extract implements Extractor.
func (e *HTMLExtractor) Extract(doc []byte, pageURL string) ([]paper.Record, error) {
	root, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s document: %w", e.layout.source, err)
	}

	records := []paper.Record{}
	root.Find(e.layout.container).Each(func(i int, item *goquery.Selection) {
		rec, err := e.extractItem(item, pageURL)
		if err != nil {
			slog.Debug("skipping item", "source", e.layout.source, "index", i, "error", err)
			return
		}
		records = append(records, rec)
	})

	return records, nil
}

func (e *HTMLExtractor) extractItem(item *goquery.Selection, pageURL string) (paper.Record, error) {
	titleSel, title, err := pick(item, e.layout.title, "title")
	if err != nil {
		return paper.Record{}, err
	}
	_, abstract, err := pick(item, e.layout.abstract, "abstract")
	if err != nil {
		return paper.Record{}, err
	}
	_, date, err := pick(item, e.layout.date, "date")
	if err != nil {
		return paper.Record{}, err
	}

	href, _ := titleSel.Attr("href")
	return paper.Record{
		Title:    title,
		Abstract: abstract,
		Date:     date,
		Source:   e.layout.source.Label(),
		URL:      resolveURL(pageURL, href),
	}, nil
}

// pick returns the first selector match with non-empty cleaned text.
func pick(item *goquery.Selection, f field, name string) (*goquery.Selection, string, error) {
	for _, selector := range f.selectors {
		sel := item.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if f.attr != "" {
			if v, ok := sel.Attr(f.attr); ok {
				if text := cleanText(v); text != "" {
					return sel, text, nil
				}
			}
		}
		if text := cleanText(sel.Text()); text != "" {
			return sel, text, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s", errFieldMissing, name)
}
