package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OwnerSnapshot is a point-in-time copy of the owning user's public fields.
// It goes stale between writes; every mutation on either aggregate attempts
// to re-synchronize it.
type OwnerSnapshot struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	FirstName string             `json:"firstName" bson:"firstName"`
	LastName  string             `json:"lastName" bson:"lastName"`
	Email     string             `json:"email" bson:"email"`
	Role      Role               `json:"role" bson:"role"`
	Avatar    string             `json:"avatar" bson:"avatar"`
}

// Post is an aggregate root. Image is either a local filename (local mode) or
// a remote object-store URL (remote mode); empty means no image. Date is set
// once at creation.
type Post struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title   string             `json:"title" bson:"title"`
	Content string             `json:"content" bson:"content"`
	Date    time.Time          `json:"date" bson:"date"`
	Image   string             `json:"image,omitempty" bson:"image,omitempty"`
	User    OwnerSnapshot      `json:"user" bson:"user"`
}
