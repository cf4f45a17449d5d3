package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sheikhmuhammadzain/vehs-analyst/internal/model"
)

// FilterExtractionSystem instructs the model to pull structured scope
// filters out of a free-text question.
const FilterExtractionSystem = "Extract optional filters (location, department, start_date, end_date in ISO YYYY-MM-DD) from the user question. " +
	"Respond with a JSON object containing zero or more of these keys. If a key is unknown, omit it."

// HazardSynthesisSystem fixes the answer structure for hazard-ranking
// questions: summary, insights, details, actions, citations.
const HazardSynthesisSystem = "You are a safety assistant. Always answer in clear, layperson-friendly language. " +
	"Follow this exact structure and order using Markdown headings:\n\n" +
	"### Summary\n" +
	"2-4 sentences in plain language that directly answer the question and give practical, prescriptive guidance.\n\n" +
	"### Data insights\n" +
	"3-6 concise bullets highlighting key trends/metrics from analytics and retrieved context. Keep wording simple.\n\n" +
	"### Details\n" +
	"A short ranked list of top hazard themes with 1-sentence 'why it matters' for each.\n\n" +
	"### Actions\n" +
	"Concise, practical prevention steps.\n\n" +
	"### Citations\n" +
	"List [Sheet:ID] pairs used. If none, omit the section."

// GeneralQASystem is the structure for questions that are not asking
// for a hazard ranking.
const GeneralQASystem = "You are a helpful data assistant. Use retrieved context to answer. " +
	"Write for non-experts and follow this exact structure and order using Markdown headings:\n\n" +
	"### Summary\n" +
	"2-4 sentences in simple language that directly answer the question and, when appropriate, give prescriptive guidance.\n\n" +
	"### Data insights\n" +
	"3-6 short bullets with the most relevant facts from the context (numbers, trends, locations, dates).\n\n" +
	"### Details\n" +
	"Any additional clarifications or steps as bullets.\n\n" +
	"### Citations\n" +
	"List [Sheet:ID] pairs used. If unsure, say so."

const snippetPreviewChars = 350

// BuildHazardPrompt assembles the user message for hazard synthesis
func BuildHazardPrompt(question string, filters model.ScopeFilter, ranking model.Ranking, snippets []model.Snippet) string {
	analyticsJSON, _ := json.Marshal(ranking)
	filtersJSON, _ := json.Marshal(filters)
	return fmt.Sprintf(
		"User question: %s\n\nFilters: %s\n\nTop hazards (JSON): %s\n\nRetrieved snippets (for context):\n%s",
		question, filtersJSON, analyticsJSON, FormatSnippets(snippets),
	)
}

// BuildGeneralPrompt assembles the user message for general QA
func BuildGeneralPrompt(question string, filters model.ScopeFilter, snippets []model.Snippet) string {
	filtersJSON, _ := json.Marshal(filters)
	return fmt.Sprintf(
		"Question: %s\n\nFilters: %s\n\nRetrieved snippets:\n%s",
		question, filtersJSON, FormatSnippets(snippets),
	)
}

// FormatSnippets renders snippets one per line as "[Sheet:ID] preview",
// capped at five entries with previews truncated to 350 characters.
func FormatSnippets(snippets []model.Snippet) string {
	var lines []string
	for i, s := range snippets {
		if i >= 5 {
			break
		}
		preview := strings.ReplaceAll(s.Text, "\n", " ")
		if len(preview) > snippetPreviewChars {
			// Back up to a rune boundary so the cut never emits invalid UTF-8
			cut := snippetPreviewChars
			for cut > 0 && !utf8.RuneStart(preview[cut]) {
				cut--
			}
			preview = preview[:cut]
		}
		lines = append(lines, fmt.Sprintf("[%s:%s] %s", s.Sheet, s.RecordID, preview))
	}
	return strings.Join(lines, "\n")
}
