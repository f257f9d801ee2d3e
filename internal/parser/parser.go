// Package parser recovers structured data from loosely formatted AI text.
//
// The scoring model is asked for pure JSON and the question model for a
// fixed tagged layout, but neither format is enforced upstream. Both
// extractors here assume the worst: prose around the payload, markdown
// fences, missing items, truncated output.
package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/mkandie/resume-screener/internal/models"
)

// QuestionCount is the fixed number of clarifying questions produced for
// every job description.
const QuestionCount = 4

const placeholderQuestion = "Please provide clarification for this aspect of the role."

// markerPattern matches one tagged question block: a marker glyph, the word
// QUESTION with its ordinal, a title on the same line, and a body running
// until the next marker glyph.
var markerPattern = regexp.MustCompile(`(?i)[🎯🔧👥🚫]\s*QUESTION\s*(\d+)[:\s]+([^\n]+)\n?([^🎯🔧👥🚫]*)`)

// numberedPattern matches the start of a numbered list item, with an
// optional "Question" prefix.
var numberedPattern = regexp.MustCompile(`(?i)^\s*(?:question\s*)?(\d+)[.:\s]+(.*)$`)

// ParseError reports that no structured scoring object could be recovered
// from an AI response. Raw keeps the offending text for diagnostics.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return "parse scoring response: " + e.Reason
}

// ExtractClarifyingQuestions pulls exactly QuestionCount questions out of
// free-form AI text. It never fails: missing items are padded with
// placeholders and extra items are dropped, so the result length is always 4
// regardless of input.
func ExtractClarifyingQuestions(text string) []models.ClarifyingQuestion {
	questions := extractMarkerQuestions(text)

	if len(questions) == 0 {
		questions = extractNumberedQuestions(text)
	}

	for len(questions) < QuestionCount {
		questions = append(questions, models.ClarifyingQuestion{
			Title:    fmt.Sprintf("Question %d", len(questions)+1),
			Question: placeholderQuestion,
		})
	}

	return questions[:QuestionCount]
}

// extractMarkerQuestions scans for the tagged 🎯/🔧/👥/🚫 QUESTION blocks the
// question prompt asks the model to produce.
func extractMarkerQuestions(text string) []models.ClarifyingQuestion {
	matches := markerPattern.FindAllStringSubmatch(text, -1)

	questions := make([]models.ClarifyingQuestion, 0, len(matches))
	for _, m := range matches {
		questions = append(questions, models.ClarifyingQuestion{
			Title:    strings.TrimSpace(m[2]),
			Question: strings.TrimSpace(m[3]),
		})
	}
	return questions
}

// extractNumberedQuestions is the fallback for models that ignore the tagged
// layout and reply with a plain numbered list. A line starting with an
// integer and a separator opens an item; following lines belong to it until
// the next such line.
func extractNumberedQuestions(text string) []models.ClarifyingQuestion {
	var questions []models.ClarifyingQuestion
	var current *models.ClarifyingQuestion
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Question = strings.TrimSpace(strings.Join(body, "\n"))
		questions = append(questions, *current)
		current = nil
		body = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if m := numberedPattern.FindStringSubmatch(line); m != nil {
			flush()
			current = &models.ClarifyingQuestion{Title: "Question " + m[1]}
			if rest := strings.TrimSpace(m[2]); rest != "" {
				body = append(body, rest)
			}
			continue
		}
		if current != nil && strings.TrimSpace(line) != "" {
			body = append(body, strings.TrimSpace(line))
		}
	}
	flush()

	return questions
}

// fence strippers for markdown-wrapped JSON.
var (
	jsonFencePattern = regexp.MustCompile("(?i)```json\\s*")
	fencePattern     = regexp.MustCompile("```\\s*")
)

// ExtractScoringJSON recovers the scoring object from an AI response.
// The common case is a clean JSON reply, parsed whole after stripping any
// code fences. When the model wraps the object in prose, the first balanced
// top-level object is located by brace counting and parsed instead; regex
// extraction cannot do this reliably for nested objects.
func ExtractScoringJSON(text string) (map[string]any, error) {
	cleaned := jsonFencePattern.ReplaceAllString(text, "")
	cleaned = fencePattern.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	var whole map[string]any
	if err := json.Unmarshal([]byte(cleaned), &whole); err == nil {
		return whole, nil
	}

	start := strings.IndexByte(cleaned, '{')
	if start == -1 {
		return nil, &ParseError{Reason: "no JSON object found in response", Raw: text}
	}

	depth := 0
	end := -1
	for i := start; i < len(cleaned); i++ {
		switch cleaned[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			end = i + 1
			break
		}
	}
	if end == -1 {
		return nil, &ParseError{Reason: "incomplete JSON object in response", Raw: text}
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned[start:end]), &obj); err != nil {
		return nil, &ParseError{Reason: "invalid JSON in response: " + err.Error(), Raw: text}
	}
	return obj, nil
}
