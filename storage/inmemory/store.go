package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/subratpandeyy/The-Wedding-Shades/models"
	"github.com/subratpandeyy/The-Wedding-Shades/storage"
)

type entry struct {
	post models.Post
	seq  uint64
}

// Store keeps posts in a map. It backs local development and handler tests.
type Store struct {
	mu    sync.RWMutex
	posts map[string]entry
	seq   uint64
	now   storage.Clock
}

func New() *Store {
	return NewWithClock(storage.SystemClock)
}

func NewWithClock(now storage.Clock) *Store {
	return &Store{
		posts: make(map[string]entry),
		now:   now,
	}
}

func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Store) Create(ctx context.Context, in models.PostInput) (*models.Post, error) {
	valid, err := models.ValidateCreate(in)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	post := models.Post{ID: id.String(), CreatedAt: now, UpdatedAt: now}
	valid.Apply(&post)

	s.seq++
	s.posts[post.ID] = entry{post: post, seq: s.seq}
	return &post, nil
}

func (s *Store) List(ctx context.Context, filter models.ListFilter) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]entry, 0, len(s.posts))
	for _, e := range s.posts {
		if filter.Category != "" && e.post.Category != filter.Category {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].post.CreatedAt.Equal(entries[j].post.CreatedAt) {
			return entries[i].post.CreatedAt.After(entries[j].post.CreatedAt)
		}
		return entries[i].seq > entries[j].seq
	})

	limit := filter.EffectiveLimit()
	if len(entries) > limit {
		entries = entries[:limit]
	}

	posts := make([]models.Post, len(entries))
	for i, e := range entries {
		posts[i] = e.post
	}
	return posts, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*models.Post, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrPostNotFound()
	}
	post := e.post
	return &post, nil
}

func (s *Store) Update(ctx context.Context, id string, in models.PostInput) (*models.Post, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}
	valid, err := models.ValidateUpdate(in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrPostNotFound()
	}
	valid.Apply(&e.post)
	e.post.UpdatedAt = s.stamp()
	s.posts[id] = e

	post := e.post
	return &post, nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) (*models.Post, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrPostNotFound()
	}
	delete(s.posts, id)

	post := e.post
	return &post, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

// canonicalID accepts any uuid spelling and returns the hyphenated lower-case form.
func canonicalID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", storage.ErrInvalidPostID(err)
	}
	return parsed.String(), nil
}
