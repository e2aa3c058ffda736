package ports

import (
	"context"
	"testing"

	"github.com/aretw0/bigpicture/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunWorkshopStoreContract runs a suite of tests to verify that a
// WorkshopStore implementation adheres to the defined interface contract.
func RunWorkshopStoreContract(t *testing.T, store WorkshopStore) {
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		w := domain.NewWorkshop("Contract", "desc", "retail", []string{"ana"})
		bc := w.AddBoundedContext("Core", "", "#FF5733")
		e := w.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "Order Placed", BoundedContextID: bc.ID})

		require.NoError(t, store.Save(ctx, w))
		defer func() { _ = store.Delete(ctx, w.Metadata.ID) }()

		loaded, err := store.Load(ctx, w.Metadata.ID)
		require.NoError(t, err)
		assert.Equal(t, w.Metadata.ID, loaded.Metadata.ID)
		assert.Equal(t, "Contract", loaded.Metadata.Name)
		require.Len(t, loaded.Elements, 1)
		assert.Equal(t, *e, *loaded.Elements[0])
		require.Len(t, loaded.BoundedContexts, 1)
		assert.Equal(t, []string{e.ID}, loaded.BoundedContexts[0].ElementIDs)
	})

	t.Run("Save Stamps UpdatedAt", func(t *testing.T) {
		w := domain.NewWorkshop("Stamp", "", "", nil)
		w.Metadata.UpdatedAt = "2000-01-01T00:00:00Z"

		require.NoError(t, store.Save(ctx, w))
		defer func() { _ = store.Delete(ctx, w.Metadata.ID) }()

		loaded, err := store.Load(ctx, w.Metadata.ID)
		require.NoError(t, err)
		assert.Greater(t, loaded.Metadata.UpdatedAt, "2000-01-01T00:00:00Z")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-workshop")
		assert.ErrorIs(t, err, domain.ErrWorkshopNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		w := domain.NewWorkshop("Doomed", "", "", nil)
		require.NoError(t, store.Save(ctx, w))

		require.NoError(t, store.Delete(ctx, w.Metadata.ID))

		_, err := store.Load(ctx, w.Metadata.ID)
		assert.ErrorIs(t, err, domain.ErrWorkshopNotFound, "Load after Delete should return ErrWorkshopNotFound")
	})

	t.Run("List", func(t *testing.T) {
		w1 := domain.NewWorkshop("First", "", "alpha", nil)
		w1.AddElement(domain.NewElement{Type: domain.TypeEvent, Name: "E"})
		w2 := domain.NewWorkshop("Second", "", "beta", nil)

		require.NoError(t, store.Save(ctx, w1))
		require.NoError(t, store.Save(ctx, w2))
		defer func() {
			_ = store.Delete(ctx, w1.Metadata.ID)
			_ = store.Delete(ctx, w2.Metadata.ID)
		}()

		summaries, err := store.List(ctx)
		require.NoError(t, err)

		byID := map[string]Summary{}
		for _, s := range summaries {
			byID[s.ID] = s
		}
		require.Contains(t, byID, w1.Metadata.ID)
		require.Contains(t, byID, w2.Metadata.ID)
		assert.Equal(t, 1, byID[w1.Metadata.ID].ElementCount)
		assert.Equal(t, "alpha", byID[w1.Metadata.ID].Domain)

		// Most recently updated first.
		for i := 1; i < len(summaries); i++ {
			assert.GreaterOrEqual(t, summaries[i-1].UpdatedAt, summaries[i].UpdatedAt)
		}
	})
}
