// Package mongostore keeps posts as documents in MongoDB. Field names match
// the documents of the existing Node deployment (camelCase, _id ObjectIDs),
// so its collection can be served as is.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/subratpandeyy/The-Wedding-Shades/models"
	"github.com/subratpandeyy/The-Wedding-Shades/storage"
	"github.com/subratpandeyy/The-Wedding-Shades/utils"
)

const (
	collectionName = "posts"

	codeNamespaceExists          = 48
	codeDocumentValidationFailed = 121
)

type postDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	ImageURL  string             `bson:"imageUrl,omitempty"`
	Category  string             `bson:"category"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d postDocument) toPost() *models.Post {
	return &models.Post{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		ImageURL:  d.ImageURL,
		Category:  models.Category(d.Category),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	coll   *mongo.Collection
	now    storage.Clock
}

// Connect dials uri, pings the primary and returns a store on database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	s := NewWithClock(client.Database(database), storage.SystemClock)
	s.client = client
	utils.LogSuccess("Connected to MongoDB")
	return s, nil
}

// NewWithClock wraps an existing database handle. Close will not disconnect
// a client it did not open.
func NewWithClock(database *mongo.Database, now storage.Clock) *Store {
	return &Store{
		db:   database,
		coll: database.Collection(collectionName),
		now:  now,
	}
}

// stamp truncates to milliseconds, the precision of BSON dates.
func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// Migrate installs the schema validator and the listing indexes.
func (s *Store) Migrate(ctx context.Context) error {
	validator := postSchema()

	err := s.db.CreateCollection(ctx, collectionName, options.CreateCollection().SetValidator(validator))
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == codeNamespaceExists {
		err = s.db.RunCommand(ctx, bson.D{
			{Key: "collMod", Value: collectionName},
			{Key: "validator", Value: validator},
		}).Err()
	}
	if err != nil {
		return utils.NewInternalError("Failed to prepare posts collection", err)
	}

	_, err = s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
	})
	if err != nil {
		return utils.NewInternalError("Failed to create posts indexes", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, in models.PostInput) (*models.Post, error) {
	valid, err := models.ValidateCreate(in)
	if err != nil {
		return nil, err
	}

	now := s.stamp()
	doc := newDocument(valid, primitive.NewObjectID(), now)

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, translate(err, "Failed to create post")
	}
	return doc.toPost(), nil
}

func (s *Store) List(ctx context.Context, filter models.ListFilter) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(filter.EffectiveLimit()))

	cursor, err := s.coll.Find(ctx, listQuery(filter), opts)
	if err != nil {
		return nil, translate(err, "Failed to fetch posts")
	}
	defer cursor.Close(ctx)

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translate(err, "Failed to fetch posts")
	}

	posts := make([]models.Post, len(docs))
	for i, d := range docs {
		posts[i] = *d.toPost()
	}
	return posts, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc postDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err, "Failed to fetch post")
	}
	return doc.toPost(), nil
}

func (s *Store) Update(ctx context.Context, id string, in models.PostInput) (*models.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	valid, err := models.ValidateUpdate(in)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc postDocument
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, updateDocument(valid, s.stamp()), opts).Decode(&doc)
	if err != nil {
		return nil, translate(err, "Failed to update post")
	}
	return doc.toPost(), nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc postDocument
	if err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(err, "Failed to delete post")
	}
	return doc.toPost(), nil
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.ToLower(id))
	if err != nil {
		return primitive.NilObjectID, storage.ErrInvalidPostID(err)
	}
	return oid, nil
}

func newDocument(valid models.PostInput, id primitive.ObjectID, now time.Time) postDocument {
	var post models.Post
	valid.Apply(&post)
	return postDocument{
		ID:        id,
		Title:     post.Title,
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		Category:  string(post.Category),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func listQuery(filter models.ListFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = string(filter.Category)
	}
	return query
}

// updateDocument builds $set for present fields. An empty image url removes
// the field instead of storing "".
func updateDocument(valid models.PostInput, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}

	if valid.Title != nil {
		set["title"] = *valid.Title
	}
	if valid.Content != nil {
		set["content"] = *valid.Content
	}
	if valid.Category != nil {
		set["category"] = *valid.Category
	}
	if valid.ImageURL != nil {
		if *valid.ImageURL == "" {
			unset["imageUrl"] = ""
		} else {
			set["imageUrl"] = *valid.ImageURL
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

func postSchema() bson.M {
	return bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"title", "content", "category", "createdAt", "updatedAt"},
		"properties": bson.M{
			"title":     bson.M{"bsonType": "string", "minLength": 1},
			"content":   bson.M{"bsonType": "string", "minLength": 1},
			"imageUrl":  bson.M{"bsonType": "string"},
			"category":  bson.M{"enum": categoryValues()},
			"createdAt": bson.M{"bsonType": "date"},
			"updatedAt": bson.M{"bsonType": "date"},
		},
	}}
}

func categoryValues() bson.A {
	values := bson.A{}
	for _, name := range models.CategoryNames() {
		values = append(values, name)
	}
	return values
}

func translate(err error, message string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrPostNotFound()
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == codeDocumentValidationFailed {
				return utils.NewValidationError(map[string]string{"post": "Post failed document validation"})
			}
		}
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == codeDocumentValidationFailed {
		return utils.NewValidationError(map[string]string{"post": "Post failed document validation"})
	}

	return utils.NewInternalError(message, err)
}
