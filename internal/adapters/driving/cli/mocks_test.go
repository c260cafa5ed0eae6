package cli

import (
	"context"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ArmanHov2006/ai-study-assistant/internal/adapters/driven/storage/memory"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driving"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/services"
)

var (
	_ driving.DocumentService  = (*MockDocumentService)(nil)
	_ driving.RetrievalService = (*MockRetrievalService)(nil)
	_ driving.StudyService     = (*MockStudyService)(nil)
)

// MockDocumentService keeps uploaded text in a map.
type MockDocumentService struct {
	Docs    map[string]string
	LastRaw *domain.RawDocument
}

func NewMockDocumentService() *MockDocumentService {
	return &MockDocumentService{Docs: map[string]string{}}
}

func (m *MockDocumentService) Upload(_ context.Context, name, text string) (*domain.UploadResult, error) {
	if text == "" {
		return nil, domain.Errorf(domain.ErrEmptyDocument, "document %q has no text", name)
	}
	m.Docs[name] = text
	return &domain.UploadResult{Name: name, TextLength: len(text), ChunkCount: 1}, nil
}

func (m *MockDocumentService) UploadFile(ctx context.Context, raw *domain.RawDocument) (*domain.UploadResult, error) {
	m.LastRaw = raw
	return m.Upload(ctx, raw.Name, string(raw.Content))
}

func (m *MockDocumentService) Delete(_ context.Context, name string) error {
	if _, ok := m.Docs[name]; !ok {
		return domain.NewError(domain.ErrDocumentNotFound, "document not found").WithContext("document", name)
	}
	delete(m.Docs, name)
	return nil
}

func (m *MockDocumentService) List(_ context.Context) ([]domain.DocumentSummary, error) {
	out := make([]domain.DocumentSummary, 0, len(m.Docs))
	for name, text := range m.Docs {
		out = append(out, domain.DocumentSummary{Name: name, Length: len(text)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockDocumentService) Get(_ context.Context, name string) (*domain.Document, error) {
	text, ok := m.Docs[name]
	if !ok {
		return nil, domain.NewError(domain.ErrDocumentNotFound, "document not found").WithContext("document", name)
	}
	return &domain.Document{Name: name, FullText: text}, nil
}

func (m *MockDocumentService) Inspect(_ context.Context, name string) (*domain.DocumentStats, error) {
	text, ok := m.Docs[name]
	if !ok {
		return nil, domain.NewError(domain.ErrDocumentNotFound, "document not found").WithContext("document", name)
	}
	return &domain.DocumentStats{
		Name:              name,
		TextLength:        len(text),
		ChunkCount:        1,
		FirstChunkPreview: text,
	}, nil
}

func (m *MockDocumentService) Supports(_, _ string) bool {
	return true
}

// MockRetrievalService returns a canned result and records the call.
type MockRetrievalService struct {
	Result     *domain.RetrievalResult
	LastQuery  string
	LastTarget domain.RetrievalTarget
	LastTopK   int
}

func (m *MockRetrievalService) RetrieveForQuery(
	_ context.Context, query string, target domain.RetrievalTarget, topK int,
) (*domain.RetrievalResult, error) {
	m.LastQuery, m.LastTarget, m.LastTopK = query, target, topK
	if m.Result == nil {
		return &domain.RetrievalResult{Method: domain.MethodKeyword}, nil
	}
	return m.Result, nil
}

func (m *MockRetrievalService) RetrieveForQuiz(
	ctx context.Context, query string, target domain.RetrievalTarget, questionCount int,
) (*domain.RetrievalResult, error) {
	return m.RetrieveForQuery(ctx, query, target, questionCount)
}

// MockStudyService answers from canned values and records requests.
type MockStudyService struct {
	Reply    *domain.ChatReply
	Summary  *domain.Summary
	Quiz     *domain.Quiz
	Err      error
	LastChat domain.ChatRequest
	LastQuiz domain.QuizRequest
}

func (m *MockStudyService) Chat(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	m.LastChat = req
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Reply != nil {
		return m.Reply, nil
	}
	return &domain.ChatReply{SessionID: "session-1", Response: "An answer.", MessageCount: 2}, nil
}

func (m *MockStudyService) Summarise(_ context.Context, name string) (*domain.Summary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Summary != nil {
		return m.Summary, nil
	}
	return &domain.Summary{
		DocumentName:     name,
		Summary:          "A short summary.",
		OriginalLength:   160,
		SummaryLength:    16,
		CompressionRatio: domain.CompressionRatio(160, 16),
	}, nil
}

func (m *MockStudyService) GenerateQuiz(_ context.Context, req domain.QuizRequest) (*domain.Quiz, error) {
	m.LastQuiz = req
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Quiz != nil {
		return m.Quiz, nil
	}
	return testQuiz(), nil
}

func (m *MockStudyService) GradeQuiz(quiz *domain.Quiz, answers []string) domain.QuizResult {
	return quiz.Grade(answers)
}

func (m *MockStudyService) GetSession(_ context.Context, id string) (*domain.Session, error) {
	return nil, domain.NewError(domain.ErrSessionNotFound, "session not found").WithContext("session_id", id)
}

func (m *MockStudyService) DeleteSession(_ context.Context, _ string) error {
	return nil
}

func (m *MockStudyService) ListSessions(_ context.Context) ([]string, error) {
	return nil, nil
}

func testQuiz() *domain.Quiz {
	return &domain.Quiz{
		Difficulty: domain.DifficultyMedium,
		Questions: []domain.Question{
			{
				Type:     domain.QuestionMultipleChoice,
				Question: "Which planet is largest?",
				Options:  map[string]string{"A": "Jupiter", "B": "Mars", "C": "Venus", "D": "Earth"},
				Correct:  "A",
			},
			{
				Type:          domain.QuestionShortAnswer,
				Question:      "What is the capital of France?",
				CorrectAnswer: "Paris",
				Explanation:   "Paris has been the capital since 987.",
			},
		},
		Sources: []string{"notes.md"},
	}
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	Document  *MockDocumentService
	Retrieval *MockRetrievalService
	Study     *MockStudyService
	Settings  *services.SettingsService
}

// setupTestServices installs fresh mocks and returns a cleanup that
// restores the previous services and resets every flag.
func setupTestServices() (*testServices, func()) {
	prev := Services{
		Document:  documentService,
		Retrieval: retrievalService,
		Study:     studyService,
		Settings:  settingsService,
	}

	ts := &testServices{
		Document:  NewMockDocumentService(),
		Retrieval: &MockRetrievalService{},
		Study:     &MockStudyService{},
		Settings:  services.NewSettingsService(memory.NewConfigStore(), nil),
	}
	SetServices(Services{
		Document:  ts.Document,
		Retrieval: ts.Retrieval,
		Study:     ts.Study,
		Settings:  ts.Settings,
	})

	return ts, func() {
		SetServices(prev)
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}
}

// resetFlags puts every flag of cmd and its children back to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}
