package driving

import (
	"context"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// StudyService answers questions, summarises documents and builds quizzes.
type StudyService interface {
	// Chat answers a message, grounded in documents when a target is given.
	Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error)

	// Summarise condenses a single document.
	Summarise(ctx context.Context, documentName string) (*domain.Summary, error)

	// GenerateQuiz creates questions from the targeted documents.
	GenerateQuiz(ctx context.Context, req domain.QuizRequest) (*domain.Quiz, error)

	// GradeQuiz scores answers against a quiz.
	GradeQuiz(quiz *domain.Quiz, answers []string) domain.QuizResult

	// GetSession returns a conversation.
	GetSession(ctx context.Context, id string) (*domain.Session, error)

	// DeleteSession removes a conversation.
	DeleteSession(ctx context.Context, id string) error

	// ListSessions returns all conversation IDs.
	ListSessions(ctx context.Context) ([]string, error)
}
