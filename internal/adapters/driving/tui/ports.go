// Package tui provides an interactive terminal chat over uploaded documents.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Study answers chat messages.
	Study driving.StudyService

	// Document lists what can be chatted about.
	Document driving.DocumentService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(study driving.StudyService, document driving.DocumentService) *Ports {
	return &Ports{
		Study:    study,
		Document: document,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Study == nil {
		return ErrMissingStudyService
	}
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	return nil
}
