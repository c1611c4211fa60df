package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role restricts what an authenticated user is allowed to do.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultAvatar is assigned when a user registers without uploading one.
const DefaultAvatar = "avatar.png"

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an aggregate root. Posts holds an owned, denormalized copy of every
// post authored by the user; it is synchronized on post mutations, never
// resolved by reference.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName    string             `json:"firstName" bson:"firstName"`
	LastName     string             `json:"lastName" bson:"lastName"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password"`
	Role         Role               `json:"role" bson:"role"`
	Avatar       string             `json:"avatar" bson:"avatar"`
	Posts        []Post             `json:"posts" bson:"posts"`
}

// Snapshot returns the public owner fields that get embedded into posts.
func (u *User) Snapshot() OwnerSnapshot {
	return OwnerSnapshot{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Avatar:    u.Avatar,
	}
}
