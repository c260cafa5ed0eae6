package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// scopeFields select the documents a request works against.
type scopeFields struct {
	DocumentName    string `json:"document_name"`
	UseAllDocuments bool   `json:"use_all_documents"`
}

func (s scopeFields) target() domain.RetrievalTarget {
	if s.UseAllDocuments {
		return domain.AllDocuments()
	}
	if s.DocumentName != "" {
		return domain.SingleDocument(s.DocumentName)
	}
	return domain.RetrievalTarget{}
}

type retrieveRequest struct {
	scopeFields
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type chatRequest struct {
	scopeFields
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	TopK      int    `json:"top_k"`
}

type chatResponse struct {
	SessionID     string   `json:"session_id"`
	Response      string   `json:"response"`
	MessageCount  int      `json:"message_count"`
	DocumentsUsed []string `json:"documents_used"`
}

type conversationEntry struct {
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
}

type quizRequest struct {
	scopeFields
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
}

type gradeRequest struct {
	Quiz    *domain.Quiz `json:"quiz"`
	Answers []string     `json:"answers"`
}

func (h *Handler) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	var req retrieveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	target := req.target()
	if !target.IsSet() {
		target = domain.AllDocuments()
	}

	result, err := h.ports.Retrieval.RetrieveForQuery(r.Context(), req.Query, target, req.TopK)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reply, err := h.ports.Study.Chat(r.Context(), domain.ChatRequest{
		Message:   req.Message,
		Target:    req.target(),
		SessionID: req.SessionID,
		TopK:      req.TopK,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	used := reply.Sources
	if used == nil {
		used = []string{}
	}
	writeJSON(w, http.StatusOK, chatResponse{
		SessionID:     reply.SessionID,
		Response:      reply.Response,
		MessageCount:  reply.MessageCount,
		DocumentsUsed: used,
	})
}

func (h *Handler) handleListConversations(w http.ResponseWriter, r *http.Request) {
	ids, err := h.ports.Study.ListSessions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	sessions := make([]conversationEntry, 0, len(ids))
	for _, id := range ids {
		session, err := h.ports.Study.GetSession(r.Context(), id)
		if err != nil {
			// Deleted between listing and reading.
			continue
		}
		sessions = append(sessions, conversationEntry{SessionID: id, MessageCount: len(session.Messages)})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

func (h *Handler) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	session, err := h.ports.Study.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.ports.Study.DeleteSession(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":    "Conversation deleted successfully",
		"session_id": id,
	})
}

func (h *Handler) handleSummarise(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ports.Study.Summarise(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !decodeBody(w, r, &req) {
		return
	}

	quiz, err := h.ports.Study.GenerateQuiz(r.Context(), domain.QuizRequest{
		Target:       req.target(),
		NumQuestions: req.NumQuestions,
		Difficulty:   domain.Difficulty(req.Difficulty),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) handleGradeQuiz(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quiz == nil || len(req.Quiz.Questions) == 0 {
		badRequest(w, "quiz with at least one question is required")
		return
	}
	writeJSON(w, http.StatusOK, h.ports.Study.GradeQuiz(req.Quiz, req.Answers))
}
