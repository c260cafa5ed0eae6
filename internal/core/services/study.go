package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driving"
	"github.com/ArmanHov2006/ai-study-assistant/internal/logger"
)

// Ensure StudyService implements the interface.
var _ driving.StudyService = (*StudyService)(nil)

const (
	// historyWindow is how many earlier messages accompany each chat turn.
	historyWindow = 10

	// maxSummaryInput caps the characters of a document sent for summary.
	maxSummaryInput = 100000

	// quizQuery steers retrieval towards material worth testing.
	quizQuery = "key concepts definitions important facts main ideas"
)

// StudyService answers questions, summarises and quizzes on top of
// retrieval and the LLM.
type StudyService struct {
	docStore  driven.DocumentStore
	sessions  driven.SessionStore
	retrieval driving.RetrievalService
	llm       driven.LLMService
	prompts   driven.PromptStore
	maxTokens int
	newID     func() string
}

// NewStudyService creates a new study service.
// The llm parameter is optional (can be nil); every LLM-backed operation
// then fails with domain.ErrLLMUnavailable.
func NewStudyService(
	docStore driven.DocumentStore,
	sessions driven.SessionStore,
	retrieval driving.RetrievalService,
	llm driven.LLMService,
	prompts driven.PromptStore,
) *StudyService {
	return &StudyService{
		docStore:  docStore,
		sessions:  sessions,
		retrieval: retrieval,
		llm:       llm,
		prompts:   prompts,
		newID:     uuid.NewString,
	}
}

// SetMaxTokens limits the length of generated answers. Zero leaves the
// provider default.
func (s *StudyService) SetMaxTokens(n int) {
	s.maxTokens = n
}

// Chat answers a message in a conversation.
func (s *StudyService) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	logger.Section("Chat")

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, domain.NewError(domain.ErrEmptyInput, "message is empty")
	}
	if s.llm == nil {
		return nil, llmUnavailable()
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = s.newID()
	}

	var history []domain.Message
	if sess, err := s.sessions.Get(ctx, sessionID); err == nil {
		history = sess.Recent(historyWindow)
	} else if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}
	logger.Debug("Session %s: %d earlier messages in window", sessionID, len(history))

	userContent, sources, err := s.groundedQuestion(ctx, message, req.Target, req.TopK)
	if err != nil {
		return nil, err
	}

	system, err := s.prompts.Load(driven.PromptChatSystem)
	if err != nil {
		return nil, err
	}

	msgs := make([]driven.ChatMessage, 0, len(history)+2)
	msgs = append(msgs, driven.ChatMessage{Role: driven.RoleSystem, Content: system})
	for _, m := range history {
		msgs = append(msgs, driven.ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	msgs = append(msgs, driven.ChatMessage{Role: driven.RoleUser, Content: userContent})

	response, err := s.llm.Chat(ctx, msgs, driven.ChatOptions{MaxTokens: s.maxTokens})
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}

	sess, err := s.sessions.Append(ctx, sessionID,
		domain.Message{Role: domain.RoleUser, Content: message},
		domain.Message{Role: domain.RoleAssistant, Content: response},
	)
	if err != nil {
		return nil, err
	}

	return &domain.ChatReply{
		SessionID:    sessionID,
		Response:     response,
		MessageCount: len(sess.Messages),
		Sources:      sources,
	}, nil
}

// groundedQuestion wraps the message in retrieved context. A missing
// document or an empty store falls back to an ungrounded question.
func (s *StudyService) groundedQuestion(
	ctx context.Context, message string, target domain.RetrievalTarget, topK int,
) (string, []string, error) {
	if !target.IsSet() {
		return message, nil, nil
	}

	result, err := s.retrieval.RetrieveForQuery(ctx, message, target, topK)
	if err != nil {
		if isMissingContent(err) {
			logger.Debug("No context for chat, answering generally: %v", err)
			return message, nil, nil
		}
		return "", nil, err
	}

	tmpl, err := s.prompts.Load(driven.PromptChatContext)
	if err != nil {
		return "", nil, err
	}
	excerpts := formatContext(result, target.AllDocuments)
	return fmt.Sprintf(tmpl, excerpts, message), uniqueSources(result), nil
}

// Summarise condenses one document.
func (s *StudyService) Summarise(ctx context.Context, documentName string) (*domain.Summary, error) {
	logger.Section("Summarise")

	if s.llm == nil {
		return nil, llmUnavailable()
	}

	doc, err := s.docStore.Get(ctx, documentName)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.FullText) == "" {
		return nil, domain.Errorf(domain.ErrEmptyDocument, "document %q has no text", documentName).
			WithContext("document", documentName)
	}

	text := doc.FullText
	if utf8.RuneCountInString(text) > maxSummaryInput {
		logger.Debug("Summary input truncated to %d characters", maxSummaryInput)
		text = truncateRunes(text, maxSummaryInput)
	}

	tmpl, err := s.prompts.Load(driven.PromptSummarise)
	if err != nil {
		return nil, err
	}

	summary, err := s.llm.Generate(ctx, fmt.Sprintf(tmpl, text), driven.GenerateOptions{MaxTokens: s.maxTokens})
	if err != nil {
		return nil, fmt.Errorf("summarise %q: %w", documentName, err)
	}
	summary = strings.TrimSpace(summary)

	original := doc.Length()
	length := utf8.RuneCountInString(summary)
	return &domain.Summary{
		DocumentName:     documentName,
		Summary:          summary,
		OriginalLength:   original,
		SummaryLength:    length,
		CompressionRatio: domain.CompressionRatio(original, length),
	}, nil
}

// GenerateQuiz builds questions from the targeted documents.
func (s *StudyService) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (*domain.Quiz, error) {
	logger.Section("Quiz")

	if req.Difficulty == "" {
		req.Difficulty = domain.DifficultyMedium
	}
	if err := validateQuizRequest(req); err != nil {
		return nil, err
	}
	if s.llm == nil {
		return nil, llmUnavailable()
	}

	result, err := s.retrieval.RetrieveForQuiz(ctx, quizQuery, req.Target, req.NumQuestions)
	if err != nil {
		return nil, err
	}

	tmpl, err := s.prompts.Load(driven.PromptQuiz)
	if err != nil {
		return nil, err
	}
	material := formatContext(result, req.Target.AllDocuments)
	prompt := fmt.Sprintf(tmpl, req.NumQuestions, req.Difficulty, material)

	raw, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{MaxTokens: s.maxTokens})
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	questions, err := parseQuestions(raw)
	if err != nil {
		return nil, err
	}
	if len(questions) > req.NumQuestions {
		questions = questions[:req.NumQuestions]
	}
	logger.Debug("Quiz: %d of %d questions parsed", len(questions), req.NumQuestions)

	return &domain.Quiz{
		Difficulty: req.Difficulty,
		Questions:  questions,
		Sources:    uniqueSources(result),
	}, nil
}

// GradeQuiz scores answers against a quiz.
func (s *StudyService) GradeQuiz(quiz *domain.Quiz, answers []string) domain.QuizResult {
	if quiz == nil {
		return domain.QuizResult{Grade: domain.GradeLabel(0)}
	}
	return quiz.Grade(answers)
}

// GetSession returns a conversation.
func (s *StudyService) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// DeleteSession removes a conversation.
func (s *StudyService) DeleteSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// ListSessions returns every conversation ID.
func (s *StudyService) ListSessions(ctx context.Context) ([]string, error) {
	return s.sessions.List(ctx)
}

func validateQuizRequest(req domain.QuizRequest) error {
	if !req.Target.IsSet() {
		return domain.NewError(domain.ErrInvalidInput, "a document name or all documents must be selected")
	}
	if req.NumQuestions < domain.MinQuizQuestions || req.NumQuestions > domain.MaxQuizQuestions {
		return domain.Errorf(domain.ErrInvalidInput, "number of questions must be between %d and %d",
			domain.MinQuizQuestions, domain.MaxQuizQuestions).
			WithContext("num_questions", strconv.Itoa(req.NumQuestions))
	}
	if !req.Difficulty.IsValid() {
		return domain.Errorf(domain.ErrInvalidInput, "difficulty must be easy, medium or hard").
			WithContext("difficulty", string(req.Difficulty))
	}
	return nil
}

// isMissingContent reports errors that mean there is nothing to ground on.
func isMissingContent(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrNoDocuments) ||
		errors.Is(err, domain.ErrNoChunks) ||
		errors.Is(err, domain.ErrEmptyDocument)
}

// formatContext joins passages, tagging each with its document when
// several documents may contribute.
func formatContext(result *domain.RetrievalResult, tagSources bool) string {
	parts := make([]string, len(result.Passages))
	sources := result.Sources()
	for i, p := range result.Passages {
		if tagSources {
			parts[i] = fmt.Sprintf("[Source: %s]\n%s", sources[i], p.Text)
			continue
		}
		parts[i] = p.Text
	}
	return strings.Join(parts, "\n\n")
}

func uniqueSources(result *domain.RetrievalResult) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, src := range result.Sources() {
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		out = append(out, src)
	}
	return out
}

func llmUnavailable() error {
	return domain.NewError(domain.ErrLLMUnavailable, "no LLM provider is configured; run 'study settings llm'")
}

// parseQuestions reads the model's JSON, tolerating prose or a code fence
// around it and either {"questions": [...]} or a bare array.
func parseQuestions(raw string) ([]domain.Question, error) {
	body := extractJSON(raw)

	var questions []domain.Question
	var wrapped struct {
		Questions []domain.Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(body), &wrapped); err == nil && wrapped.Questions != nil {
		questions = wrapped.Questions
	} else if err := json.Unmarshal([]byte(body), &questions); err != nil {
		return nil, domain.NewError(domain.ErrServiceFailure, "quiz response was not valid JSON").
			WithContext("response", truncateRunes(strings.TrimSpace(raw), previewLength))
	}

	valid := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			continue
		}
		if q.Type == "" {
			q.Type = domain.QuestionShortAnswer
			if len(q.Options) > 0 {
				q.Type = domain.QuestionMultipleChoice
			}
		}
		if q.Type == domain.QuestionMultipleChoice && (len(q.Options) == 0 || q.Correct == "") {
			continue
		}
		if q.Type == domain.QuestionShortAnswer && q.CorrectAnswer == "" {
			continue
		}
		valid = append(valid, q)
	}

	if len(valid) == 0 {
		return nil, domain.NewError(domain.ErrServiceFailure, "quiz response contained no usable questions")
	}
	return valid, nil
}

// extractJSON returns the outermost JSON object or array in s.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			s = strings.TrimSpace(rest[:end])
		}
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return s
	}
	closer := byte('}')
	if s[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(s, closer)
	if end < start {
		return s[start:]
	}
	return s[start : end+1]
}
