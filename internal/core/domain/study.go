package domain

import (
	"fmt"
	"strings"
)

// ChatRequest asks a question, optionally grounded in uploaded documents.
type ChatRequest struct {
	Message   string
	Target    RetrievalTarget
	SessionID string
	TopK      int
}

// ChatReply is the assistant's answer.
type ChatReply struct {
	SessionID    string   `json:"session_id"`
	Response     string   `json:"response"`
	MessageCount int      `json:"message_count"`
	Sources      []string `json:"sources,omitempty"`
}

// Summary is a condensed version of a document.
type Summary struct {
	DocumentName     string `json:"filename"`
	Summary          string `json:"summary"`
	OriginalLength   int    `json:"original_length"`
	SummaryLength    int    `json:"summarized_length"`
	CompressionRatio string `json:"compression_ratio"`
}

// CompressionRatio formats summary length as a percentage of the original.
func CompressionRatio(original, summary int) string {
	if original <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(summary)/float64(original)*100)
}

// Difficulty controls how hard generated quiz questions are.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid returns true if the difficulty is recognised.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Quiz size limits.
const (
	MinQuizQuestions = 5
	MaxQuizQuestions = 40
)

// QuizRequest asks for a generated quiz.
type QuizRequest struct {
	Target       RetrievalTarget
	NumQuestions int
	Difficulty   Difficulty
}

// QuestionType distinguishes answer formats.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionShortAnswer    QuestionType = "short_answer"
)

// Question is one quiz item.
type Question struct {
	Type     QuestionType `json:"type" yaml:"type"`
	Question string       `json:"question" yaml:"question"`

	// Options and Correct are set for multiple choice questions.
	Options map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
	Correct string            `json:"correct,omitempty" yaml:"correct,omitempty"`

	// CorrectAnswer and AcceptableVariations are set for short answers.
	CorrectAnswer        string   `json:"correct_answer,omitempty" yaml:"correct_answer,omitempty"`
	AcceptableVariations []string `json:"acceptable_variations,omitempty" yaml:"acceptable_variations,omitempty"`

	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// Quiz is a set of generated questions.
type Quiz struct {
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	Questions  []Question `json:"questions" yaml:"questions"`
	Sources    []string   `json:"sources,omitempty" yaml:"sources,omitempty"`
}

// IsCorrect grades a single answer.
// Multiple choice compares option keys ignoring case. Short answers match
// when the normalised answer equals the expected answer, equals an
// acceptable variation, or contains the expected answer.
func (q *Question) IsCorrect(answer string) bool {
	given := strings.ToLower(strings.TrimSpace(answer))
	if given == "" {
		return false
	}

	if q.Type == QuestionMultipleChoice {
		return given == strings.ToLower(strings.TrimSpace(q.Correct))
	}

	expected := strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
	if expected != "" && (given == expected || strings.Contains(given, expected)) {
		return true
	}
	for _, v := range q.AcceptableVariations {
		if given == strings.ToLower(strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}

// GradedAnswer is the outcome for one question.
type GradedAnswer struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Expected    string `json:"expected"`
	Correct     bool   `json:"correct"`
	Explanation string `json:"explanation,omitempty"`
}

// QuizResult is the graded outcome of a quiz attempt.
type QuizResult struct {
	Correct    int            `json:"correct"`
	Total      int            `json:"total"`
	Percentage float64        `json:"percentage"`
	Grade      string         `json:"grade"`
	Items      []GradedAnswer `json:"items"`
}

// Grade scores answers against the quiz. answers[i] answers question i;
// missing answers count as wrong.
func (q *Quiz) Grade(answers []string) QuizResult {
	result := QuizResult{Total: len(q.Questions)}

	for i := range q.Questions {
		question := &q.Questions[i]
		var answer string
		if i < len(answers) {
			answer = answers[i]
		}

		expected := question.CorrectAnswer
		if question.Type == QuestionMultipleChoice {
			expected = question.Correct
		}

		ok := question.IsCorrect(answer)
		if ok {
			result.Correct++
		}
		result.Items = append(result.Items, GradedAnswer{
			Question:    question.Question,
			Answer:      answer,
			Expected:    expected,
			Correct:     ok,
			Explanation: question.Explanation,
		})
	}

	if result.Total > 0 {
		result.Percentage = float64(result.Correct) / float64(result.Total) * 100
	}
	result.Grade = GradeLabel(result.Percentage)
	return result
}

// GradeLabel turns a percentage into a short verdict.
func GradeLabel(percentage float64) string {
	switch {
	case percentage >= 80:
		return "Excellent"
	case percentage >= 60:
		return "Good"
	default:
		return "Keep studying"
	}
}
