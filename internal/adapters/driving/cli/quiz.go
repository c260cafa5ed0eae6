package cli

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// Quiz output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	quizScope       scopeFlags
	quizQuestions   int
	quizDifficulty  string
	quizFormat      string
	quizInteractive bool
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz from your material",
	Long: `Generates multiple choice and short answer questions from the uploaded
documents. Uses every document unless --document is given.

With --interactive the questions are asked one at a time and your answers are
graded at the end. Otherwise the quiz and its answer key are printed as text,
JSON or YAML.`,
	Args: cobra.NoArgs,
	RunE: runQuiz,
}

func init() {
	quizScope.register(quizCmd)
	quizCmd.Flags().IntVarP(&quizQuestions, "questions", "n", domain.MinQuizQuestions,
		fmt.Sprintf("number of questions (%d-%d)", domain.MinQuizQuestions, domain.MaxQuizQuestions))
	quizCmd.Flags().StringVar(&quizDifficulty, "difficulty", string(domain.DifficultyMedium), "easy, medium or hard")
	quizCmd.Flags().StringVar(&quizFormat, "format", formatText, "output format: text, json or yaml")
	quizCmd.Flags().BoolVarP(&quizInteractive, "interactive", "i", false, "answer the questions and get a grade")
	rootCmd.AddCommand(quizCmd)
}

func runQuiz(cmd *cobra.Command, _ []string) error {
	if studyService == nil {
		return errStudyServiceMissing
	}

	switch quizFormat {
	case formatText, formatJSON, formatYAML:
	default:
		return domain.Errorf(domain.ErrInvalidInput, "unknown format %q (want text, json or yaml)", quizFormat)
	}

	target, err := quizScope.target(domain.AllDocuments())
	if err != nil {
		return err
	}

	quiz, err := studyService.GenerateQuiz(cmd.Context(), domain.QuizRequest{
		Target:       target,
		NumQuestions: quizQuestions,
		Difficulty:   domain.Difficulty(strings.ToLower(quizDifficulty)),
	})
	if err != nil {
		return describe("failed to generate quiz", err)
	}

	if quizInteractive {
		return runInteractiveQuiz(cmd, quiz)
	}

	switch quizFormat {
	case formatJSON:
		return printJSON(cmd, quiz)
	case formatYAML:
		data, err := yaml.Marshal(quiz)
		if err != nil {
			return fmt.Errorf("failed to marshal quiz: %w", err)
		}
		cmd.Print(string(data))
		return nil
	default:
		printQuiz(cmd, quiz)
		return nil
	}
}

func printQuiz(cmd *cobra.Command, quiz *domain.Quiz) {
	cmd.Printf("Quiz (%s, %d questions)\n\n", quiz.Difficulty, len(quiz.Questions))
	for i := range quiz.Questions {
		printQuestion(cmd, i+1, &quiz.Questions[i])
	}

	cmd.Println("Answer key")
	cmd.Println("----------")
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		cmd.Printf("%d. %s\n", i+1, expectedAnswer(q))
		if q.Explanation != "" {
			cmd.Printf("   %s\n", q.Explanation)
		}
	}
	if len(quiz.Sources) > 0 {
		cmd.Printf("\nSources: %s\n", strings.Join(quiz.Sources, ", "))
	}
}

func printQuestion(cmd *cobra.Command, n int, q *domain.Question) {
	cmd.Printf("%d. %s\n", n, q.Question)
	if q.Type == domain.QuestionMultipleChoice {
		for _, key := range optionKeys(q.Options) {
			cmd.Printf("   %s) %s\n", key, q.Options[key])
		}
	}
	cmd.Println()
}

func runInteractiveQuiz(cmd *cobra.Command, quiz *domain.Quiz) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	answers := make([]string, len(quiz.Questions))

	for i := range quiz.Questions {
		printQuestion(cmd, i+1, &quiz.Questions[i])
		cmd.Print("Your answer: ")
		answers[i] = readLine(reader)
		cmd.Println()
	}

	result := studyService.GradeQuiz(quiz, answers)

	cmd.Println("Results")
	cmd.Println("-------")
	for i, item := range result.Items {
		mark := "wrong"
		if item.Correct {
			mark = "correct"
		}
		cmd.Printf("%d. %s (expected %s)\n", i+1, mark, item.Expected)
		if !item.Correct && item.Explanation != "" {
			cmd.Printf("   %s\n", item.Explanation)
		}
	}
	cmd.Printf("\nScore: %d/%d (%.0f%%) - %s\n", result.Correct, result.Total, result.Percentage, result.Grade)
	return nil
}

func expectedAnswer(q *domain.Question) string {
	if q.Type == domain.QuestionMultipleChoice {
		if text, ok := q.Options[q.Correct]; ok {
			return fmt.Sprintf("%s) %s", q.Correct, text)
		}
		return q.Correct
	}
	return q.CorrectAnswer
}

func optionKeys(options map[string]string) []string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
