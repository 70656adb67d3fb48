package paper

import (
	"fmt"
	"strings"
)

// Record is a single paper extracted from a research source.
// Dates are kept in the source's own format.
type Record struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Date     string `json:"date"`
	Source   string `json:"source"`
	URL      string `json:"url"`
}

// Ref is the paper metadata attached to every indexed chunk.
type Ref struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

// Ref returns the chunk metadata for the record.
func (r Record) Ref() Ref {
	return Ref{
		Title:  r.Title,
		URL:    r.URL,
		Source: r.Source,
		Date:   r.Date,
	}
}

// IndexText returns the text that gets chunked and embedded for the record.
func (r Record) IndexText() string {
	return fmt.Sprintf("Title: %s\nAbstract: %s\nDate: %s\nSource: %s\nURL: %s",
		r.Title, r.Abstract, r.Date, r.Source, r.URL)
}

// Key identifies a paper for citation de-duplication.
func (r Ref) Key() string {
	return strings.ToLower(strings.TrimSpace(r.Title)) + "\x00" + strings.ToLower(strings.TrimSpace(r.Source))
}

// Meta flattens the reference into vector store payload fields.
func (r Ref) Meta() map[string]any {
	return map[string]any{
		"title":  r.Title,
		"url":    r.URL,
		"source": r.Source,
		"date":   r.Date,
	}
}

// RefFromMeta rebuilds a reference from vector store payload fields.
// Missing fields are left empty.
func RefFromMeta(meta map[string]any) Ref {
	str := func(key string) string {
		s, _ := meta[key].(string)
		return s
	}
	return Ref{
		Title:  str("title"),
		URL:    str("url"),
		Source: str("source"),
		Date:   str("date"),
	}
}
