package mcp

import (
	"context"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driving"
)

var (
	_ driving.DocumentService  = (*mockDocumentService)(nil)
	_ driving.RetrievalService = (*mockRetrievalService)(nil)
	_ driving.StudyService     = (*mockStudyService)(nil)
)

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	summaries []domain.DocumentSummary
	document  *domain.Document
	upload    *domain.UploadResult
	deleted   string
	err       error
}

func (m *mockDocumentService) Upload(_ context.Context, name, text string) (*domain.UploadResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.upload != nil {
		return m.upload, nil
	}
	return &domain.UploadResult{Name: name, TextLength: len(text), ChunkCount: 1}, nil
}

func (m *mockDocumentService) UploadFile(_ context.Context, raw *domain.RawDocument) (*domain.UploadResult, error) {
	return m.Upload(context.Background(), raw.Name, string(raw.Content))
}

func (m *mockDocumentService) Delete(_ context.Context, name string) error {
	m.deleted = name
	return m.err
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.DocumentSummary, error) {
	return m.summaries, m.err
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) Inspect(_ context.Context, _ string) (*domain.DocumentStats, error) {
	return nil, m.err
}

func (m *mockDocumentService) Supports(_, _ string) bool {
	return true
}

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	result     *domain.RetrievalResult
	err        error
	lastTarget domain.RetrievalTarget
	lastTopK   int
}

func (m *mockRetrievalService) RetrieveForQuery(
	_ context.Context, _ string, target domain.RetrievalTarget, topK int,
) (*domain.RetrievalResult, error) {
	m.lastTarget = target
	m.lastTopK = topK
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &domain.RetrievalResult{Method: domain.MethodFallback}, nil
	}
	return m.result, nil
}

func (m *mockRetrievalService) RetrieveForQuiz(
	ctx context.Context, query string, target domain.RetrievalTarget, _ int,
) (*domain.RetrievalResult, error) {
	return m.RetrieveForQuery(ctx, query, target, 0)
}

// mockStudyService is a mock implementation of driving.StudyService.
type mockStudyService struct {
	reply       *domain.ChatReply
	summary     *domain.Summary
	quiz        *domain.Quiz
	err         error
	lastChat    domain.ChatRequest
	lastQuiz    domain.QuizRequest
	lastSummary string
}

func (m *mockStudyService) Chat(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	m.lastChat = req
	return m.reply, m.err
}

func (m *mockStudyService) Summarise(_ context.Context, name string) (*domain.Summary, error) {
	m.lastSummary = name
	return m.summary, m.err
}

func (m *mockStudyService) GenerateQuiz(_ context.Context, req domain.QuizRequest) (*domain.Quiz, error) {
	m.lastQuiz = req
	return m.quiz, m.err
}

func (m *mockStudyService) GradeQuiz(quiz *domain.Quiz, answers []string) domain.QuizResult {
	return quiz.Grade(answers)
}

func (m *mockStudyService) GetSession(_ context.Context, _ string) (*domain.Session, error) {
	return nil, m.err
}

func (m *mockStudyService) DeleteSession(_ context.Context, _ string) error {
	return m.err
}

func (m *mockStudyService) ListSessions(_ context.Context) ([]string, error) {
	return nil, m.err
}

func newTestServer(docs *mockDocumentService, retrieval *mockRetrievalService, study *mockStudyService) (*Server, error) {
	if docs == nil {
		docs = &mockDocumentService{}
	}
	if retrieval == nil {
		retrieval = &mockRetrievalService{}
	}
	if study == nil {
		study = &mockStudyService{}
	}
	return NewServer(&Ports{Document: docs, Retrieval: retrieval, Study: study})
}
