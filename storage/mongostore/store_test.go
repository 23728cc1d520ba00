package mongostore

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/subratpandeyy/The-Wedding-Shades/models"
	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

func str(s string) *string { return &s }

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := parseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	_, err = parseID("65F0C0FFEE0000000000BEEF")
	assert.NoError(t, err, "upper-case hex is still a valid object id")

	for _, bad := range []string{"", "not-an-id", "123e4567-e89b-12d3-a456-426614174000", "65f0c0ffee0000000000bee"} {
		_, err := parseID(bad)
		assert.Equal(t, utils.KindInvalidID, utils.KindOf(err), bad)
	}
}

func TestListQuery(t *testing.T) {
	assert.Equal(t, bson.M{}, listQuery(models.ListFilter{}))
	assert.Equal(t, bson.M{"category": "Wedding"}, listQuery(models.ListFilter{Category: models.CategoryWedding}))
}

func TestUpdateDocument(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	update := updateDocument(models.PostInput{Title: str("New"), Category: str("Events")}, now)
	assert.Equal(t, bson.M{"$set": bson.M{
		"updatedAt": now,
		"title":     "New",
		"category":  "Events",
	}}, update)

	update = updateDocument(models.PostInput{ImageURL: str("")}, now)
	assert.Equal(t, bson.M{
		"$set":   bson.M{"updatedAt": now},
		"$unset": bson.M{"imageUrl": ""},
	}, update)
}

func TestNewDocumentRoundTrip(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	oid := primitive.NewObjectID()

	doc := newDocument(models.PostInput{
		Title:    str("A"),
		Content:  str("B"),
		ImageURL: str("https://res.cloudinary.com/shades/image/upload/v1/blog_images/a.png"),
		Category: str("Portraits"),
	}, oid, now)

	post := doc.toPost()
	assert.Equal(t, oid.Hex(), post.ID)
	assert.Equal(t, models.CategoryPortraits, post.Category)
	assert.Equal(t, "https://res.cloudinary.com/shades/image/upload/v1/blog_images/a.png", post.ImageURL)
	assert.True(t, post.CreatedAt.Equal(post.UpdatedAt))
}

func TestDocumentReadsNodeFieldNames(t *testing.T) {
	oid := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{
		"_id":       oid,
		"title":     "Vows",
		"content":   "By the lake",
		"imageUrl":  "https://res.cloudinary.com/x/image/upload/v1/blog_images/v.jpg",
		"category":  "Wedding",
		"createdAt": time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		"updatedAt": time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		"__v":       0,
	})
	require.NoError(t, err)

	var doc postDocument
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "Vows", doc.Title)
	assert.Equal(t, "Wedding", doc.Category)
}

func TestPostSchemaListsEveryCategory(t *testing.T) {
	schema := postSchema()["$jsonSchema"].(bson.M)
	category := schema["properties"].(bson.M)["category"].(bson.M)
	assert.Len(t, category["enum"], len(models.Categories))
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, utils.KindNotFound, utils.KindOf(translate(mongo.ErrNoDocuments, "x")))
	assert.Equal(t, utils.KindNotFound, utils.KindOf(translate(fmt.Errorf("decode: %w", mongo.ErrNoDocuments), "x")))

	writeErr := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: codeDocumentValidationFailed, Message: "Document failed validation"}}}
	assert.Equal(t, utils.KindValidation, utils.KindOf(translate(writeErr, "x")))

	assert.Equal(t, utils.KindInternal, utils.KindOf(translate(errors.New("server selection timeout"), "x")))
}
