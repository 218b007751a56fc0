// Package store persists users and posts in the document database.
// Handlers depend on the interfaces so tests can swap in mocks.
package store

import (
	"context"
	"errors"

	"blog-service/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound means the referenced record does not exist (or vanished)
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail means the unique email index rejected the insert
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore is the credential store: user records keyed by id, looked up
// by their unique email.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, emailID string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	AppendPostSummary(ctx context.Context, userID primitive.ObjectID, summary models.PostSummary) error
}

// PostStore holds the authoritative post records for the shared feed
type PostStore interface {
	Insert(ctx context.Context, post *models.Post) (primitive.ObjectID, error)
	List(ctx context.Context) ([]models.Post, error)
}
