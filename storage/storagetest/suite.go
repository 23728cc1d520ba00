// Package storagetest holds the behaviour every storage.PostStore must show.
// Each store package runs it against its own backend.
package storagetest

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subratpandeyy/The-Wedding-Shades/models"
	"github.com/subratpandeyy/The-Wedding-Shades/storage"
	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

// Factory returns an empty store stamping writes with now.
type Factory func(t *testing.T, now storage.Clock) storage.PostStore

type Options struct {
	// MissingID is well formed for the store but never assigned.
	MissingID string
	// MalformedID is rejected by the store's id scheme.
	MalformedID string
}

// TickingClock returns start, start+1s, start+2s... on successive calls.
type TickingClock struct {
	mu   sync.Mutex
	next time.Time
}

func NewTickingClock(start time.Time) *TickingClock {
	return &TickingClock{next: start}
}

func (c *TickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(time.Second)
	return now
}

func str(s string) *string { return &s }

func input(title, content, category string) models.PostInput {
	return models.PostInput{Title: str(title), Content: str(content), Category: str(category)}
}

func Run(t *testing.T, opts Options, newStore Factory) {
	if opts.MalformedID == "" {
		opts.MalformedID = "not-an-id"
	}

	setup := func(t *testing.T) storage.PostStore {
		clock := NewTickingClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
		return newStore(t, clock.Now)
	}

	t.Run("CreateThenGet", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()

		in := input("A", "B", "Events")
		in.ImageURL = str("https://res.cloudinary.com/shades/image/upload/v1/blog_images/a.png")

		created, err := s.Create(ctx, in)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "A", got.Title)
		assert.Equal(t, "B", got.Content)
		assert.Equal(t, models.CategoryEvents, got.Category)
		assert.Equal(t, *in.ImageURL, got.ImageURL)
		assert.True(t, got.CreatedAt.Equal(got.UpdatedAt))
		assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
	})

	t.Run("CreateTrimsText", func(t *testing.T) {
		s := setup(t)

		created, err := s.Create(context.Background(), input("  Golden hour ", "\tNotes\n", "Wedding"))
		require.NoError(t, err)
		assert.Equal(t, "Golden hour", created.Title)
		assert.Equal(t, "Notes", created.Content)
	})

	t.Run("CreateRejectsInvalidInput", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()

		bad := []models.PostInput{
			input("A", "B", "Landscape"),
			input("A", "B", "wedding"),
			input("", "B", "Events"),
			input("   ", "B", "Events"),
			input("A", " \n", "Events"),
			{Title: str("A"), Content: str("B")},
		}
		for _, in := range bad {
			_, err := s.Create(ctx, in)
			require.Error(t, err)
			assert.Equal(t, utils.KindValidation, utils.KindOf(err))
		}

		posts, err := s.List(ctx, models.ListFilter{})
		require.NoError(t, err)
		assert.Empty(t, posts, "a rejected post must not be persisted")
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()

		p1, err := s.Create(ctx, input("P1", "c", "Wedding"))
		require.NoError(t, err)
		p2, err := s.Create(ctx, input("P2", "c", "Events"))
		require.NoError(t, err)
		p3, err := s.Create(ctx, input("P3", "c", "Wedding"))
		require.NoError(t, err)

		posts, err := s.List(ctx, models.ListFilter{})
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, []string{p3.ID, p2.ID, p1.ID}, ids(posts))
	})

	t.Run("ListByCategory", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()

		w1, _ := s.Create(ctx, input("W1", "c", "Wedding"))
		_, _ = s.Create(ctx, input("E1", "c", "Events"))
		w2, _ := s.Create(ctx, input("W2", "c", "Wedding"))
		_, _ = s.Create(ctx, input("P1", "c", "Products"))

		posts, err := s.List(ctx, models.ListFilter{Category: models.CategoryWedding})
		require.NoError(t, err)
		assert.Equal(t, []string{w2.ID, w1.ID}, ids(posts))
		for _, p := range posts {
			assert.Equal(t, models.CategoryWedding, p.Category)
		}

		none, err := s.List(ctx, models.ListFilter{Category: "Landscape"})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("ListLimit", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			_, err := s.Create(ctx, input("P", "c", "Portraits"))
			require.NoError(t, err)
		}

		posts, err := s.List(ctx, models.ListFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, posts, 2)

		posts, err = s.List(ctx, models.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, posts, 5)
	})

	t.Run("GetUnknownAndMalformed", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()

		_, err := s.GetByID(ctx, opts.MissingID)
		assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

		_, err = s.GetByID(ctx, opts.MalformedID)
		assert.Equal(t, utils.KindInvalidID, utils.KindOf(err))
	})

	t.Run("GetIsRepeatable", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()

		created, err := s.Create(ctx, input("A", "B", "Events"))
		require.NoError(t, err)

		first, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		second, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)

		a, _ := json.Marshal(first)
		b, _ := json.Marshal(second)
		assert.Equal(t, string(a), string(b))
	})

	t.Run("UpdatePartial", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()

		created, err := s.Create(ctx, input("A", "B", "Events"))
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, models.PostInput{Title: str(" New ")})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, "B", updated.Content)
		assert.Equal(t, models.CategoryEvents, updated.Category)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", got.Title)
		assert.True(t, got.UpdatedAt.Equal(updated.UpdatedAt))
	})

	t.Run("UpdateClearsImage", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()

		in := input("A", "B", "Events")
		in.ImageURL = str("https://res.cloudinary.com/shades/image/upload/v1/blog_images/a.png")
		created, err := s.Create(ctx, in)
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, models.PostInput{ImageURL: str("")})
		require.NoError(t, err)
		assert.Empty(t, updated.ImageURL)
	})

	t.Run("UpdateRejectsInvalid", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()

		created, err := s.Create(ctx, input("A", "B", "Events"))
		require.NoError(t, err)

		_, err = s.Update(ctx, created.ID, models.PostInput{Category: str("Sports")})
		assert.Equal(t, utils.KindValidation, utils.KindOf(err))
		_, err = s.Update(ctx, created.ID, models.PostInput{Title: str(" ")})
		assert.Equal(t, utils.KindValidation, utils.KindOf(err))

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "A", got.Title)
		assert.Equal(t, models.CategoryEvents, got.Category)
		assert.True(t, got.UpdatedAt.Equal(created.UpdatedAt))

		_, err = s.Update(ctx, opts.MissingID, models.PostInput{Title: str("x")})
		assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
		_, err = s.Update(ctx, opts.MalformedID, models.PostInput{Title: str("x")})
		assert.Equal(t, utils.KindInvalidID, utils.KindOf(err))
	})

	t.Run("DeleteReturnsRecord", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()

		created, err := s.Create(ctx, input("A", "B", "Products"))
		require.NoError(t, err)

		deleted, err := s.DeleteByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, deleted.ID)
		assert.Equal(t, "A", deleted.Title)

		_, err = s.GetByID(ctx, created.ID)
		assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

		_, err = s.DeleteByID(ctx, created.ID)
		assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
	})

	t.Run("DeleteUnknownAndMalformed", func(t *testing.T) {
		s := setup(t)
		ctx := context.Background()

		_, err := s.DeleteByID(ctx, opts.MissingID)
		assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

		_, err = s.DeleteByID(ctx, opts.MalformedID)
		assert.Equal(t, utils.KindInvalidID, utils.KindOf(err))
	})
}

func ids(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}
