package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// scope turns the document selection fields shared by several tools into
// a retrieval target. Leaving both empty selects no documents.
func scope(document string, all bool) domain.RetrievalTarget {
	if all {
		return domain.AllDocuments()
	}
	if document != "" {
		return domain.SingleDocument(document)
	}
	return domain.RetrievalTarget{}
}

// UploadTextInput is the input schema for the upload_text tool.
type UploadTextInput struct {
	Name string `json:"name" jsonschema:"name to store the document under; re-using a name replaces it"`
	Text string `json:"text" jsonschema:"the study material"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []domain.DocumentSummary `json:"documents"`
	Count     int                      `json:"count"`
}

// DeleteDocumentInput is the input schema for the delete_document tool.
type DeleteDocumentInput struct {
	Name string `json:"name" jsonschema:"the document to delete"`
}

// DeleteDocumentOutput is the output schema for the delete_document tool.
type DeleteDocumentOutput struct {
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query        string `json:"query" jsonschema:"what to look for"`
	Document     string `json:"document,omitempty" jsonschema:"name of a single uploaded document"`
	AllDocuments bool   `json:"all_documents,omitempty" jsonschema:"search every uploaded document (the default)"`
	TopK         int    `json:"top_k,omitempty" jsonschema:"number of passages to return (default from settings)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Passages []domain.RetrievedPassage `json:"passages"`
	Method   string                    `json:"method"`
	Count    int                       `json:"count"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question     string `json:"question" jsonschema:"the question to answer"`
	Document     string `json:"document,omitempty" jsonschema:"ground the answer in a single uploaded document"`
	AllDocuments bool   `json:"all_documents,omitempty" jsonschema:"ground the answer in every uploaded document"`
	SessionID    string `json:"session_id,omitempty" jsonschema:"continue an earlier conversation"`
}

// SummariseInput is the input schema for the summarise tool.
type SummariseInput struct {
	Document string `json:"document" jsonschema:"the document to summarise"`
}

// GenerateQuizInput is the input schema for the generate_quiz tool.
type GenerateQuizInput struct {
	Document     string `json:"document,omitempty" jsonschema:"quiz on a single uploaded document"`
	AllDocuments bool   `json:"all_documents,omitempty" jsonschema:"quiz on every uploaded document"`
	NumQuestions int    `json:"num_questions,omitempty" jsonschema:"between 5 and 40 (default 5)"`
	Difficulty   string `json:"difficulty,omitempty" jsonschema:"easy, medium or hard (default medium)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "upload_text",
		Description: "Upload study material as plain text",
	}, s.handleUploadText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List uploaded documents and their lengths",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_document",
		Description: "Delete an uploaded document",
	}, s.handleDeleteDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Find the passages most relevant to a query",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using uploaded documents as context",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarise",
		Description: "Summarise a single uploaded document",
	}, s.handleSummarise)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_quiz",
		Description: "Generate quiz questions from uploaded documents",
	}, s.handleGenerateQuiz)
}

func (s *Server) handleUploadText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadTextInput,
) (*mcp.CallToolResult, domain.UploadResult, error) {
	result, err := s.ports.Document.Upload(ctx, input.Name, input.Text)
	if err != nil {
		return nil, domain.UploadResult{}, err
	}
	return nil, *result, nil
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}
	if docs == nil {
		docs = []domain.DocumentSummary{}
	}
	return nil, ListDocumentsOutput{Documents: docs, Count: len(docs)}, nil
}

func (s *Server) handleDeleteDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteDocumentInput,
) (*mcp.CallToolResult, DeleteDocumentOutput, error) {
	if err := s.ports.Document.Delete(ctx, input.Name); err != nil {
		return nil, DeleteDocumentOutput{}, err
	}
	return nil, DeleteDocumentOutput{Name: input.Name, Deleted: true}, nil
}

func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	target := scope(input.Document, input.AllDocuments)
	if !target.IsSet() {
		target = domain.AllDocuments()
	}

	result, err := s.ports.Retrieval.RetrieveForQuery(ctx, input.Query, target, input.TopK)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	passages := result.Passages
	if passages == nil {
		passages = []domain.RetrievedPassage{}
	}
	return nil, RetrieveOutput{
		Passages: passages,
		Method:   string(result.Method),
		Count:    len(passages),
	}, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, domain.ChatReply, error) {
	reply, err := s.ports.Study.Chat(ctx, domain.ChatRequest{
		Message:   input.Question,
		Target:    scope(input.Document, input.AllDocuments),
		SessionID: input.SessionID,
	})
	if err != nil {
		return nil, domain.ChatReply{}, err
	}
	return nil, *reply, nil
}

func (s *Server) handleSummarise(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummariseInput,
) (*mcp.CallToolResult, domain.Summary, error) {
	summary, err := s.ports.Study.Summarise(ctx, input.Document)
	if err != nil {
		return nil, domain.Summary{}, err
	}
	return nil, *summary, nil
}

func (s *Server) handleGenerateQuiz(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateQuizInput,
) (*mcp.CallToolResult, domain.Quiz, error) {
	count := input.NumQuestions
	if count == 0 {
		count = domain.MinQuizQuestions
	}
	quiz, err := s.ports.Study.GenerateQuiz(ctx, domain.QuizRequest{
		Target:       scope(input.Document, input.AllDocuments),
		NumQuestions: count,
		Difficulty:   domain.Difficulty(input.Difficulty),
	})
	if err != nil {
		return nil, domain.Quiz{}, err
	}
	return nil, *quiz, nil
}
