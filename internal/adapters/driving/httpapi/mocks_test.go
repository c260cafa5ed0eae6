package httpapi

import (
	"context"
	"sort"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driving"
)

var (
	_ driving.DocumentService  = (*mockDocumentService)(nil)
	_ driving.RetrievalService = (*mockRetrievalService)(nil)
	_ driving.StudyService     = (*mockStudyService)(nil)
)

// mockDocumentService keeps uploads in a map.
type mockDocumentService struct {
	docs      map[string]string
	uploadErr error
	lastRaw   *domain.RawDocument
}

func newMockDocumentService() *mockDocumentService {
	return &mockDocumentService{docs: map[string]string{}}
}

func (m *mockDocumentService) Upload(_ context.Context, name, text string) (*domain.UploadResult, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	m.docs[name] = text
	return &domain.UploadResult{Name: name, TextLength: len(text), ChunkCount: 1, EmbeddingCount: 1}, nil
}

func (m *mockDocumentService) UploadFile(ctx context.Context, raw *domain.RawDocument) (*domain.UploadResult, error) {
	m.lastRaw = raw
	return m.Upload(ctx, raw.Name, string(raw.Content))
}

func (m *mockDocumentService) Delete(_ context.Context, name string) error {
	if _, ok := m.docs[name]; !ok {
		return domain.NewError(domain.ErrDocumentNotFound, "document not found").WithContext("document", name)
	}
	delete(m.docs, name)
	return nil
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.DocumentSummary, error) {
	out := make([]domain.DocumentSummary, 0, len(m.docs))
	for name, text := range m.docs {
		out = append(out, domain.DocumentSummary{Name: name, Length: len(text)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockDocumentService) Get(_ context.Context, name string) (*domain.Document, error) {
	text, ok := m.docs[name]
	if !ok {
		return nil, domain.NewError(domain.ErrDocumentNotFound, "document not found")
	}
	return &domain.Document{Name: name, FullText: text}, nil
}

func (m *mockDocumentService) Inspect(_ context.Context, name string) (*domain.DocumentStats, error) {
	text, ok := m.docs[name]
	if !ok {
		return nil, domain.NewError(domain.ErrDocumentNotFound, "document not found")
	}
	return &domain.DocumentStats{Name: name, TextLength: len(text), ChunkCount: 1, FirstChunkPreview: text}, nil
}

func (m *mockDocumentService) Supports(_, _ string) bool {
	return true
}

// mockRetrievalService records its last call.
type mockRetrievalService struct {
	result     *domain.RetrievalResult
	err        error
	lastQuery  string
	lastTarget domain.RetrievalTarget
	lastTopK   int
}

func (m *mockRetrievalService) RetrieveForQuery(
	_ context.Context, query string, target domain.RetrievalTarget, topK int,
) (*domain.RetrievalResult, error) {
	m.lastQuery, m.lastTarget, m.lastTopK = query, target, topK
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &domain.RetrievalResult{Passages: []domain.RetrievedPassage{}, Method: domain.MethodKeyword}, nil
	}
	return m.result, nil
}

func (m *mockRetrievalService) RetrieveForQuiz(
	ctx context.Context, query string, target domain.RetrievalTarget, _ int,
) (*domain.RetrievalResult, error) {
	return m.RetrieveForQuery(ctx, query, target, 0)
}

// mockStudyService answers from canned values.
type mockStudyService struct {
	reply    *domain.ChatReply
	summary  *domain.Summary
	quiz     *domain.Quiz
	err      error
	sessions map[string]*domain.Session
	lastChat domain.ChatRequest
	lastQuiz domain.QuizRequest
}

func (m *mockStudyService) Chat(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	m.lastChat = req
	if m.err != nil {
		return nil, m.err
	}
	return m.reply, nil
}

func (m *mockStudyService) Summarise(_ context.Context, _ string) (*domain.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

func (m *mockStudyService) GenerateQuiz(_ context.Context, req domain.QuizRequest) (*domain.Quiz, error) {
	m.lastQuiz = req
	if m.err != nil {
		return nil, m.err
	}
	return m.quiz, nil
}

func (m *mockStudyService) GradeQuiz(quiz *domain.Quiz, answers []string) domain.QuizResult {
	return quiz.Grade(answers)
}

func (m *mockStudyService) GetSession(_ context.Context, id string) (*domain.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.NewError(domain.ErrSessionNotFound, "session not found")
	}
	return s, nil
}

func (m *mockStudyService) DeleteSession(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return domain.NewError(domain.ErrSessionNotFound, "session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *mockStudyService) ListSessions(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
