package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender is the enumerated gender field on a user record
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// IsValid reports whether g is one of the allowed values
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// User represents a user in the system
// Password is stored hashed (bcrypt); never return plain in JSON responses
type User struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName   string             `json:"firstName" bson:"firstName"`
	LastName    string             `json:"lastName" bson:"lastName"`
	DateOfBirth string             `json:"dateOfBirth" bson:"dateOfBirth"`
	Gender      Gender             `json:"gender" bson:"gender"`
	EmailID     string             `json:"emailID" bson:"emailID"` // Unique login identifier
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber"`
	Password    string             `json:"-" bson:"password"` // Hashed; omitted from JSON
	Posts       []PostSummary      `json:"posts" bson:"posts"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// PostSummary is the denormalized copy of a post embedded in its author's
// record for quick "my posts" access. Append-only; the Post collection
// stays authoritative.
type PostSummary struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// RegisterRequest represents the POST /register request body
// Password is plaintext here; it is hashed before the user is persisted
type RegisterRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      Gender `json:"gender"`
	EmailID     string `json:"emailID"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// LoginRequest for POST /login (cookie session)
type LoginRequest struct {
	EmailID  string `json:"emailID"`
	Password string `json:"password"`
}

// LoginProfile is the minimal profile echoed back on login
// (never the hash, never the full record)
type LoginProfile struct {
	FirstName string `json:"firstName"`
	EmailID   string `json:"emailID"`
}

// CheckAuthUser is the presentable subset returned by GET /checkAuth
type CheckAuthUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CheckAuthResponse for GET /checkAuth
type CheckAuthResponse struct {
	IsAuthenticated bool          `json:"isAuthenticated"`
	User            CheckAuthUser `json:"user"`
}
