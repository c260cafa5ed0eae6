package mcp

import (
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Document manages uploaded material.
	Document driving.DocumentService

	// Retrieval ranks passages for a query.
	Retrieval driving.RetrievalService

	// Study answers questions, summarises and builds quizzes.
	Study driving.StudyService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	if p.Study == nil {
		return ErrMissingStudyService
	}
	return nil
}
