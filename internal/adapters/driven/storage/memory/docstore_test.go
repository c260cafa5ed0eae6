package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

func testDoc(name string, passages []string, vectors []domain.Vector) *domain.Document {
	text := ""
	for _, p := range passages {
		text += p
	}
	return &domain.Document{Name: name, FullText: text, Passages: passages, Vectors: vectors}
}

func TestDocumentStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	doc := testDoc("notes.txt", []string{"alpha", "beta"}, []domain.Vector{{1, 0}, {0, 1}})
	require.NoError(t, store.Save(ctx, doc))

	got, err := store.Get(ctx, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "alphabeta", got.FullText)
	assert.Equal(t, []string{"alpha", "beta"}, got.Passages)
	assert.Equal(t, domain.Vector{0, 1}, got.Vectors[1])
}

func TestDocumentStore_Save_RequiresName(t *testing.T) {
	store := NewDocumentStore()

	err := store.Save(context.Background(), &domain.Document{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = store.Save(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentStore_Save_RejectsExtraVectors(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	err := store.Save(ctx, testDoc("a", []string{"x"}, []domain.Vector{{1}, {2}}))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Equal(t, "1", domain.ContextOf(err)["passages"])
	assert.Equal(t, "2", domain.ContextOf(err)["vectors"])

	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_Save_Isolated(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	doc := testDoc("a", []string{"one"}, []domain.Vector{{1, 2}})
	require.NoError(t, store.Save(ctx, doc))

	doc.Passages[0] = "changed"
	doc.Vectors[0][0] = 99

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "one", got.Passages[0])
	assert.Equal(t, float32(1), got.Vectors[0][0])

	got.Passages[0] = "mutated"
	again, _ := store.Get(ctx, "a")
	assert.Equal(t, "one", again.Passages[0])
}

func TestDocumentStore_Replace_KeepsPosition(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	require.NoError(t, store.Save(ctx, testDoc("first", []string{"x"}, nil)))
	require.NoError(t, store.Save(ctx, testDoc("second", []string{"y"}, nil)))
	require.NoError(t, store.Save(ctx, testDoc("first", []string{"longer text"}, nil)))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.DocumentSummary{Name: "first", Length: 11}, list[0])
	assert.Equal(t, "second", list[1].Name)

	c, err := store.CollectAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Documents)
}

func TestDocumentStore_Get_NotFound(t *testing.T) {
	store := NewDocumentStore()

	_, err := store.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "missing", domain.ContextOf(err)["document"])
}

func TestDocumentStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	require.NoError(t, store.Save(ctx, testDoc("a", []string{"x"}, nil)))
	require.NoError(t, store.Save(ctx, testDoc("b", []string{"y"}, nil)))

	require.NoError(t, store.Delete(ctx, "a"))

	_, err := store.Get(ctx, "a")
	assert.True(t, errors.Is(err, domain.ErrDocumentNotFound))

	list, _ := store.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Name)

	err = store.Delete(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestDocumentStore_List_Empty(t *testing.T) {
	list, err := NewDocumentStore().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDocumentStore_CollectAll(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	// b has a partial prefix of vectors, c has none.
	require.NoError(t, store.Save(ctx, testDoc("a", []string{"a0", "a1"}, []domain.Vector{{1}, {2}})))
	require.NoError(t, store.Save(ctx, testDoc("b", []string{"b0", "b1", "b2"}, []domain.Vector{{3}})))
	require.NoError(t, store.Save(ctx, testDoc("c", []string{"c0"}, nil)))

	c, err := store.CollectAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 6, c.Len())
	assert.Equal(t, 3, c.Documents)
	assert.Equal(t, []string{"a0", "a1", "b0", "b1", "b2", "c0"}, c.Passages)
	assert.Equal(t, []string{"a", "a", "b", "b", "b", "c"}, c.Sources)
	require.Len(t, c.Vectors, 6)
	assert.Equal(t, domain.Vector{3}, c.Vectors[2])
	assert.False(t, c.Vectors[3].Present())
	assert.False(t, c.Vectors[4].Present())
	assert.False(t, c.Vectors[5].Present())
}

func TestDocumentStore_CollectAll_Empty(t *testing.T) {
	c, err := NewDocumentStore().CollectAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Zero(t, c.Documents)
}

func TestDocumentStore_Concurrency(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(3)
		go func(n int) {
			defer wg.Done()
			_ = store.Save(ctx, testDoc(fmt.Sprintf("doc-%d", n), []string{"p"}, nil))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = store.CollectAll(ctx)
		}()
		go func() {
			defer wg.Done()
			_, _ = store.List(ctx)
		}()
	}
	wg.Wait()

	c, err := store.CollectAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, c.Documents)
	assert.Equal(t, 20, c.Len())
}
