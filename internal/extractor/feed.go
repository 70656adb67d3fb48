package extractor

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/mmcdole/gofeed"

	"github.com/lakshitcodes/DocuMed/internal/paper"
)

// FeedExtractor extracts records from RSS or Atom feeds.
type FeedExtractor struct {
	source paper.SourceType
}

// NewFeed returns a feed extractor tagging records with source's label.
func NewFeed(source paper.SourceType) *FeedExtractor {
	return &FeedExtractor{source: source}
}

// Source returns the source type this extractor handles.
func (e *FeedExtractor) Source() paper.SourceType {
	return e.source
}

// Extract implements Extractor.
func (e *FeedExtractor) Extract(doc []byte, pageURL string) ([]paper.Record, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s feed: %w", e.source, err)
	}

	records := []paper.Record{}
	for i, item := range feed.Items {
		rec, err := e.extractItem(item, pageURL)
		if err != nil {
			slog.Debug("skipping item", "source", e.source, "index", i, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (e *FeedExtractor) extractItem(item *gofeed.Item, pageURL string) (paper.Record, error) {
	if item == nil {
		return paper.Record{}, fmt.Errorf("%w: item", errFieldMissing)
	}

	title := cleanText(item.Title)
	if title == "" {
		return paper.Record{}, fmt.Errorf("%w: title", errFieldMissing)
	}

	abstract := cleanText(item.Description)
	if abstract == "" {
		abstract = cleanText(item.Content)
	}
	if abstract == "" {
		return paper.Record{}, fmt.Errorf("%w: abstract", errFieldMissing)
	}

	date := cleanText(item.Published)
	if date == "" {
		date = cleanText(item.Updated)
	}
	if date == "" {
		return paper.Record{}, fmt.Errorf("%w: date", errFieldMissing)
	}

	return paper.Record{
		Title:    title,
		Abstract: abstract,
		Date:     date,
		Source:   e.source.Label(),
		URL:      resolveURL(pageURL, item.Link),
	}, nil
}
