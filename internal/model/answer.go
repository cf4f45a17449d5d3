package model

// Snippet is one retrieved text chunk with its citation metadata and
// similarity score, as handed to answer synthesis.
type Snippet struct {
	Sheet     SheetKind `json:"source_sheet"`
	RecordID  string    `json:"record_id"`
	Text      string    `json:"text"`
	Relevance float64   `json:"relevance_score"`
}

// Answer is the complete result of one question through the pipeline
type Answer struct {
	Question string      `json:"question"`
	Filters  ScopeFilter `json:"filters"`
	Ranking  Ranking     `json:"ranking"`
	Snippets []Snippet   `json:"snippets,omitempty"`

	// Markdown is the synthesized natural-language answer. When no LLM
	// provider is configured it holds a deterministic rendering of the
	// ranking instead.
	Markdown string `json:"markdown"`

	// Provider and Model identify the LLM used, empty when disabled
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`

	// ThreadID ties the answer to a conversation session
	ThreadID string `json:"thread_id,omitempty"`
}
