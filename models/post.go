package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author is the snapshot of the post's author captured at creation time.
// Not a live reference: if the user later renames, historical posts keep
// the old name.
type Author struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	FirstName string             `json:"firstName" bson:"firstName"`
	LastName  string             `json:"lastName" bson:"lastName"`
	EmailID   string             `json:"emailID" bson:"emailID"`
}

// Post represents a post in the shared feed
type Post struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	Author    Author             `json:"author" bson:"author"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreatePostRequest represents the POST /post request body
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
