package rag

import "github.com/lakshitcodes/DocuMed/internal/paper"

// AskRequest represents a question for the synthesizer.
type AskRequest struct {
	Question string
	K        int // Number of chunks to retrieve (default: 5, max: 20)
}

// AskResponse represents the synthesized analysis and its citations.
type AskResponse struct {
	Analysis string      `json:"analysis"`
	Papers   []paper.Ref `json:"papers"`
	Sections []Section   `json:"sections"`
	// Indexed is false when no papers have been processed yet.
	Indexed bool `json:"indexed"`
}

// Section is one headed block of the model's Markdown analysis.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}
