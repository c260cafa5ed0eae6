// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// study assistant. It lets AI assistants upload material, retrieve passages,
// ask grounded questions and generate quizzes.
package mcp

import "errors"

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("mcp: document service is required")

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

// ErrMissingStudyService is returned when the study service is not provided.
var ErrMissingStudyService = errors.New("mcp: study service is required")
