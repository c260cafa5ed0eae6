package tui

import "errors"

// ErrMissingStudyService is returned when the study service is not provided.
var ErrMissingStudyService = errors.New("tui: study service is required")

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("tui: document service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
