package store

import (
	"context"
	"fmt"

	"blog-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

type mongoUserStore struct {
	coll *mongo.Collection
}

// NewUserStore returns a UserStore backed by the users collection
func NewUserStore(db *mongo.Database) UserStore {
	return &mongoUserStore{coll: db.Collection(usersCollection)}
}

func (s *mongoUserStore) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Posts == nil {
		user.Posts = []models.PostSummary{}
	}

	_, err := s.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		// The unique emailID index closes the read-then-write race:
		// the second concurrent writer fails here deterministically.
		return primitive.NilObjectID, ErrDuplicateEmail
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert user: %w", err)
	}
	return user.ID, nil
}

func (s *mongoUserStore) FindByEmail(ctx context.Context, emailID string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"emailID": emailID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

func (s *mongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &user, nil
}

func (s *mongoUserStore) AppendPostSummary(ctx context.Context, userID primitive.ObjectID, summary models.PostSummary) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"posts": summary}},
	)
	if err != nil {
		return fmt.Errorf("failed to append post summary: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
