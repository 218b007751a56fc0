package store

import (
	"context"
	"fmt"

	"blog-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const postsCollection = "posts"

type mongoPostStore struct {
	coll *mongo.Collection
}

// NewPostStore returns a PostStore backed by the posts collection
func NewPostStore(db *mongo.Database) PostStore {
	return &mongoPostStore{coll: db.Collection(postsCollection)}
}

func (s *mongoPostStore) Insert(ctx context.Context, post *models.Post) (primitive.ObjectID, error) {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}

	_, err := s.coll.InsertOne(ctx, post)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert post: %w", err)
	}
	return post.ID, nil
}

// List returns every post, newest first. Unbounded: the feed carries no
// pagination.
func (s *mongoPostStore) List(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}
