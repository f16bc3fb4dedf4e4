package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studymate/internal/docstore"
	"studymate/internal/websearch"
)

type fakeDocs struct {
	SearchFunc func(ctx context.Context, query string, opts docstore.SearchOptions) ([]docstore.Passage, error)
	Empty      bool
	LastOpts   docstore.SearchOptions
}

func (f *fakeDocs) Search(ctx context.Context, query string, opts docstore.SearchOptions) ([]docstore.Passage, error) {
	f.LastOpts = opts
	if f.SearchFunc != nil {
		return f.SearchFunc(ctx, query, opts)
	}
	return []docstore.Passage{{DocumentID: "doc-1", Content: "passage"}}, nil
}

func (f *fakeDocs) HasDocuments(context.Context) bool { return !f.Empty }

type fakeWeb struct {
	SearchFunc func(ctx context.Context, query string, opts websearch.Options) (*websearch.Result, error)
}

func (f *fakeWeb) Search(ctx context.Context, query string, opts websearch.Options) (*websearch.Result, error) {
	if f.SearchFunc != nil {
		return f.SearchFunc(ctx, query, opts)
	}
	return &websearch.Result{Text: "answer"}, nil
}

func TestAdapter_SearchDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("passes options through", func(t *testing.T) {
		docs := &fakeDocs{}
		a := New(docs, nil)

		passages := a.SearchDocuments(ctx, "query", 5, 0.6)
		require.Len(t, passages, 1)
		assert.Equal(t, 5, docs.LastOpts.MaxResults)
		assert.Equal(t, 0.6, docs.LastOpts.SimilarityThreshold)
		assert.Empty(t, docs.LastOpts.DocumentIDs)
	})

	t.Run("scoped search carries document IDs", func(t *testing.T) {
		docs := &fakeDocs{}
		a := New(docs, nil)

		a.SearchDocumentsIn(ctx, "query", 3, 0, []string{"doc-9"})
		assert.Equal(t, []string{"doc-9"}, docs.LastOpts.DocumentIDs)
	})

	t.Run("nil backend degrades to nil", func(t *testing.T) {
		a := New(nil, nil)
		assert.Nil(t, a.SearchDocuments(ctx, "query", 5, 0))
	})

	t.Run("empty library degrades to nil", func(t *testing.T) {
		a := New(&fakeDocs{Empty: true}, nil)
		assert.Nil(t, a.SearchDocuments(ctx, "query", 5, 0))
	})

	t.Run("backend error degrades to nil", func(t *testing.T) {
		docs := &fakeDocs{SearchFunc: func(context.Context, string, docstore.SearchOptions) ([]docstore.Passage, error) {
			return nil, errors.New("disk on fire")
		}}
		a := New(docs, nil)
		assert.Nil(t, a.SearchDocuments(ctx, "query", 5, 0))
	})
}

func TestAdapter_SearchWeb(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates to backend", func(t *testing.T) {
		a := New(nil, &fakeWeb{})
		assert.True(t, a.HasWebSearch())

		result, err := a.SearchWeb(ctx, "query", websearch.Options{MaxResults: 3})
		require.NoError(t, err)
		assert.Equal(t, "answer", result.Text)
	})

	t.Run("propagates backend errors", func(t *testing.T) {
		wantErr := &websearch.SearchError{Provider: "tavily", Query: "q", Err: errors.New("timeout")}
		web := &fakeWeb{SearchFunc: func(context.Context, string, websearch.Options) (*websearch.Result, error) {
			return nil, wantErr
		}}
		a := New(nil, web)

		_, err := a.SearchWeb(ctx, "q", websearch.Options{})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("nil backend returns search error", func(t *testing.T) {
		a := New(nil, nil)
		assert.False(t, a.HasWebSearch())

		_, err := a.SearchWeb(ctx, "query", websearch.Options{})
		var searchErr *websearch.SearchError
		require.True(t, errors.As(err, &searchErr))
		assert.Equal(t, "none", searchErr.Provider)
		assert.Equal(t, "query", searchErr.Query)
	})
}
