package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
// Documents are cloned on the way in and out so callers never share
// slices with the store.
type DocumentStore struct {
	mu    sync.RWMutex
	docs  map[string]*domain.Document
	order []string
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]*domain.Document),
	}
}

// Save stores a document. Replacing a name keeps its original position.
func (s *DocumentStore) Save(_ context.Context, doc *domain.Document) error {
	if doc == nil || doc.Name == "" {
		return domain.NewError(domain.ErrInvalidInput, "document name is required")
	}
	if len(doc.Vectors) > len(doc.Passages) {
		return domain.Errorf(domain.ErrDimensionMismatch,
			"document %q has more vectors than passages", doc.Name).
			WithContext("document", doc.Name).
			WithContext("passages", strconv.Itoa(len(doc.Passages))).
			WithContext("vectors", strconv.Itoa(len(doc.Vectors)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docs[doc.Name]; !exists {
		s.order = append(s.order, doc.Name)
	}
	s.docs[doc.Name] = doc.Clone()
	return nil
}

// Get retrieves a document by name.
func (s *DocumentStore) Get(_ context.Context, name string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[name]
	if !ok {
		return nil, notFound(name)
	}
	return doc.Clone(), nil
}

// Delete removes a document.
func (s *DocumentStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[name]; !ok {
		return notFound(name)
	}
	delete(s.docs, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns every document name and length in insertion order.
func (s *DocumentStore) List(_ context.Context) ([]domain.DocumentSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.DocumentSummary, 0, len(s.order))
	for _, name := range s.order {
		doc := s.docs[name]
		result = append(result, domain.DocumentSummary{Name: name, Length: doc.Length()})
	}
	return result, nil
}

// CollectAll flattens every document into parallel passage, vector and
// source sequences. Passages beyond a document's vectors get NoVector.
func (s *DocumentStore) CollectAll(_ context.Context) (*domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := &domain.Collection{Documents: len(s.order)}
	for _, name := range s.order {
		doc := s.docs[name]
		for i, p := range doc.Passages {
			c.Passages = append(c.Passages, p)
			c.Vectors = append(c.Vectors, append(domain.Vector(nil), doc.VectorAt(i)...))
			c.Sources = append(c.Sources, name)
		}
	}
	return c, nil
}

func notFound(name string) error {
	return domain.Errorf(domain.ErrDocumentNotFound, "document %q not found", name).
		WithContext("document", name)
}
