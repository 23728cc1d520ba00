// Package gormstore keeps posts in a relational database through gorm. It
// runs on postgres in production and on sqlite for local use and tests.
package gormstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/subratpandeyy/The-Wedding-Shades/models"
	"github.com/subratpandeyy/The-Wedding-Shades/storage"
	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

// postgres SQLSTATE codes the store translates
const (
	codeCheckViolation   = "23514"
	codeNotNullViolation = "23502"
	codeInvalidText      = "22P02"
)

type Store struct {
	db  *gorm.DB
	now storage.Clock
}

func New(db *gorm.DB) *Store {
	return NewWithClock(db, storage.SystemClock)
}

func NewWithClock(db *gorm.DB, now storage.Clock) *Store {
	return &Store{db: db, now: now}
}

// stamp truncates to microseconds, the precision postgres keeps.
func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Post{}); err != nil {
		return utils.NewInternalError("Failed to migrate posts table", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, in models.PostInput) (*models.Post, error) {
	valid, err := models.ValidateCreate(in)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, utils.NewInternalError("Failed to create post", err)
	}

	now := s.stamp()
	post := models.Post{ID: id.String(), CreatedAt: now, UpdatedAt: now}
	valid.Apply(&post)

	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, translate(err, "Failed to create post")
	}
	return &post, nil
}

func (s *Store) List(ctx context.Context, filter models.ListFilter) ([]models.Post, error) {
	posts := []models.Post{}
	query := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(filter.EffectiveLimit())

	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}

	if err := query.Find(&posts).Error; err != nil {
		return nil, translate(err, "Failed to fetch posts")
	}
	return posts, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*models.Post, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err, "Failed to fetch post")
	}
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

	changes := map[string]interface{}{"updated_at": s.stamp()}
	if valid.Title != nil {
		changes["title"] = *valid.Title
	}
	if valid.Content != nil {
		changes["content"] = *valid.Content
	}
	if valid.ImageURL != nil {
		changes["image_url"] = *valid.ImageURL
	}
	if valid.Category != nil {
		changes["category"] = *valid.Category
	}

	var post models.Post
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Post{}).Where("id = ?", id).Updates(changes)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&post, "id = ?", id).Error
	})
	if err != nil {
		return nil, translate(err, "Failed to update post")
	}
	return &post, nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) (*models.Post, error) {
	id, err := canonicalID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Post{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, translate(err, "Failed to delete post")
	}
	return &post, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func canonicalID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", storage.ErrInvalidPostID(err)
	}
	return parsed.String(), nil
}

// translate turns driver errors into tagged application errors. Constraint
// violations should be unreachable because input is validated first.
func translate(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrPostNotFound()
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeCheckViolation:
			return utils.NewValidationError(map[string]string{
				"category": "Category must be one of: " + strings.Join(models.CategoryNames(), ", "),
			})
		case codeNotNullViolation:
			return utils.NewValidationError(map[string]string{
				pgErr.ColumnName: pgErr.ColumnName + " is required",
			})
		case codeInvalidText:
			return storage.ErrInvalidPostID(err)
		}
	}

	return utils.NewInternalError(message, err)
}
