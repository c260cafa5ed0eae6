package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds. Every error returned by the core wraps one of these so
// callers can branch with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDocumentNotFound indicates the named document is not stored.
	ErrDocumentNotFound = fmt.Errorf("document %w", ErrNotFound)

	// ErrSessionNotFound indicates the conversation session does not exist.
	ErrSessionNotFound = fmt.Errorf("session %w", ErrNotFound)

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyDocument indicates a document with no text or no passages.
	ErrEmptyDocument = errors.New("empty document")

	// ErrEmptyInput indicates empty or whitespace-only text where content is required.
	ErrEmptyInput = errors.New("empty input")

	// ErrNoDocuments indicates an all-documents query against an empty store.
	ErrNoDocuments = errors.New("no documents uploaded")

	// ErrNoChunks indicates every stored document has zero passages.
	ErrNoChunks = errors.New("no passages available")

	// ErrDimensionMismatch indicates vectors and passages that cannot be paired.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrUnsupportedFormat indicates a file type no extractor handles.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrDecode indicates the file could not be decoded to text.
	ErrDecode = errors.New("decode failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Chat, summaries and quizzes are disabled without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Retrieval falls back to keyword ranking without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrConfigNotFound indicates a required setting is missing.
	ErrConfigNotFound = errors.New("configuration not found")

	// External service errors.

	// ErrExternalService indicates an embedding or LLM call failed.
	ErrExternalService = errors.New("external service error")

	// ErrAuth indicates the provider rejected the credentials.
	ErrAuth = fmt.Errorf("%w: authentication failed", ErrExternalService)

	// ErrRateLimit indicates the provider throttled the request.
	ErrRateLimit = fmt.Errorf("%w: rate limited", ErrExternalService)

	// ErrConnection indicates the provider could not be reached.
	ErrConnection = fmt.Errorf("%w: connection failed", ErrExternalService)

	// ErrBadRequest indicates the provider refused the request as malformed.
	ErrBadRequest = fmt.Errorf("%w: bad request", ErrExternalService)

	// ErrServiceFailure indicates the provider failed or returned unusable output.
	ErrServiceFailure = fmt.Errorf("%w: service failure", ErrExternalService)
)

// Error is a structured error carrying its kind, a human message and
// the context needed to render a specific message to the user.
type Error struct {
	// Kind is one of the sentinel errors above.
	Kind error

	// Message is a human readable description.
	Message string

	// Context holds details such as the document name or the
	// alternatives that were available.
	Context map[string]string
}

// NewError creates a structured error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf creates a structured error with a formatted message.
func Errorf(kind error, format string, args ...any) *Error {
	return NewError(kind, fmt.Sprintf(format, args...))
}

// WithContext attaches a key/value detail and returns the error.
func (e *Error) WithContext(key, value string) *Error {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	switch {
	case e.Kind != nil && e.Message != "":
		b.WriteString(e.Kind.Error())
		b.WriteString(": ")
		b.WriteString(e.Message)
	case e.Kind != nil:
		b.WriteString(e.Kind.Error())
	default:
		b.WriteString(e.Message)
	}
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(e.Context[k])
		}
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap returns the error kind so errors.Is matches the sentinel.
func (e *Error) Unwrap() error {
	return e.Kind
}

// KindOf returns the most specific known kind in err's chain, or nil.
func KindOf(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// kinds is ordered most specific first.
var kinds = []error{
	ErrDocumentNotFound,
	ErrSessionNotFound,
	ErrNotFound,
	ErrEmptyDocument,
	ErrEmptyInput,
	ErrNoDocuments,
	ErrNoChunks,
	ErrDimensionMismatch,
	ErrUnsupportedFormat,
	ErrDecode,
	ErrInvalidInput,
	ErrLLMUnavailable,
	ErrEmbeddingUnavailable,
	ErrConfigNotFound,
	ErrAuth,
	ErrRateLimit,
	ErrConnection,
	ErrBadRequest,
	ErrServiceFailure,
	ErrExternalService,
}

// KindName returns a stable machine-readable name for an error kind.
func KindName(err error) string {
	switch KindOf(err) {
	case ErrDocumentNotFound:
		return "document_not_found"
	case ErrSessionNotFound:
		return "session_not_found"
	case ErrNotFound:
		return "not_found"
	case ErrEmptyDocument:
		return "empty_document"
	case ErrEmptyInput:
		return "empty_input"
	case ErrNoDocuments:
		return "no_documents"
	case ErrNoChunks:
		return "no_chunks"
	case ErrDimensionMismatch:
		return "dimension_mismatch"
	case ErrUnsupportedFormat:
		return "unsupported_format"
	case ErrDecode:
		return "decode_error"
	case ErrInvalidInput:
		return "invalid_input"
	case ErrLLMUnavailable:
		return "llm_unavailable"
	case ErrEmbeddingUnavailable:
		return "embedding_unavailable"
	case ErrConfigNotFound:
		return "config_not_found"
	case ErrAuth:
		return "auth_error"
	case ErrRateLimit:
		return "rate_limit"
	case ErrConnection:
		return "connection_error"
	case ErrBadRequest:
		return "bad_request"
	case ErrServiceFailure, ErrExternalService:
		return "service_error"
	default:
		return "internal_error"
	}
}

// ContextOf returns the structured context attached to err, if any.
func ContextOf(err error) map[string]string {
	var de *Error
	if errors.As(err, &de) {
		return de.Context
	}
	return nil
}
