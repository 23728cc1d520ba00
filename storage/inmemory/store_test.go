package inmemory

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subratpandeyy/The-Wedding-Shades/models"
	"github.com/subratpandeyy/The-Wedding-Shades/storage"
	"github.com/subratpandeyy/The-Wedding-Shades/storage/storagetest"
)

func TestStore_Conformance(t *testing.T) {
	storagetest.Run(t, storagetest.Options{
		MissingID: "123e4567-e89b-12d3-a456-426614174000",
	}, func(t *testing.T, now storage.Clock) storage.PostStore {
		return NewWithClock(now)
	})
}

func TestStore_AcceptsAnyUUIDSpelling(t *testing.T) {
	s := New()
	ctx := context.Background()

	title, content, category := "A", "B", "Events"
	created, err := s.Create(ctx, models.PostInput{Title: &title, Content: &content, Category: &category})
	require.NoError(t, err)

	got, err := s.GetByID(ctx, strings.ToUpper(created.ID))
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	title, content, category := "A", "B", "Events"
	created, err := s.Create(ctx, models.PostInput{Title: &title, Content: &content, Category: &category})
	require.NoError(t, err)

	created.Title = "mutated"
	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			title, content, category := "A", "B", "Events"
			_, err := s.Create(ctx, models.PostInput{Title: &title, Content: &content, Category: &category})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	posts, err := s.List(ctx, models.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, posts, 20)
}
