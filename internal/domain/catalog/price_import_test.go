package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriceImport(t *testing.T) {
	t.Run("starts processing", func(t *testing.T) {
		imp, err := NewPriceImport("api", 10, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, ImportProcessing, imp.Status)
		assert.Equal(t, 10, imp.TotalRows)
		assert.Nil(t, imp.CompletedAt)
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		_, err := NewPriceImport("api", 0, uuid.New())
		assert.Error(t, err)
	})

	t.Run("defaults source", func(t *testing.T) {
		imp, err := NewPriceImport("", 1, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, "api", imp.Source)
	})
}

func TestPriceImportComplete(t *testing.T) {
	t.Run("records outcome", func(t *testing.T) {
		imp, err := NewPriceImport("api", 5, uuid.New())
		require.NoError(t, err)

		failures := []PriceImportFailure{{ExternalArticle: "A-1", Reason: "bad price"}}
		require.NoError(t, imp.Complete(3, 1, failures))

		assert.Equal(t, ImportCompleted, imp.Status)
		assert.Equal(t, 3, imp.CreatedRows)
		assert.Equal(t, 1, imp.UpdatedRows)
		assert.Equal(t, 1, imp.FailedRows())
		assert.NotNil(t, imp.CompletedAt)
		assert.InDelta(t, 0.8, imp.SuccessRate(), 0.001)
	})

	t.Run("fully rejected batch is failed", func(t *testing.T) {
		imp, err := NewPriceImport("api", 2, uuid.New())
		require.NoError(t, err)

		failures := []PriceImportFailure{
			{ExternalArticle: "A-1", Reason: "bad price"},
			{ExternalArticle: "A-2", Reason: "no name"},
		}
		require.NoError(t, imp.Complete(0, 0, failures))
		assert.Equal(t, ImportFailed, imp.Status)
	})

	t.Run("cannot complete twice", func(t *testing.T) {
		imp, err := NewPriceImport("api", 1, uuid.New())
		require.NoError(t, err)
		require.NoError(t, imp.Complete(1, 0, nil))
		assert.Error(t, imp.Complete(1, 0, nil))
	})
}

func TestPriceImportFailuresJSON(t *testing.T) {
	imp, err := NewPriceImport("api", 2, uuid.New())
	require.NoError(t, err)
	require.NoError(t, imp.Complete(1, 0, []PriceImportFailure{
		{ExternalArticle: "A-1", Reason: "bad price"},
	}))

	raw, err := imp.FailuresJSON()
	require.NoError(t, err)

	restored := &PriceImport{}
	require.NoError(t, restored.SetFailuresJSON(raw))
	require.Len(t, restored.Failures, 1)
	assert.Equal(t, "A-1", restored.Failures[0].ExternalArticle)

	empty := &PriceImport{}
	require.NoError(t, empty.SetFailuresJSON("[]"))
	assert.Empty(t, empty.Failures)
}
