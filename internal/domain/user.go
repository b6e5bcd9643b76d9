package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is a user's authorization level. Roles are binary: everyone is a
// default user until an admin promotes them.
type Role string

const (
	RoleDefault Role = "default"
	RoleAdmin   Role = "admin"
)

// User is a registered account, keyed by email. Created on first sign-in.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Email string             `bson:"email" json:"email"`
	Role  Role               `bson:"role,omitempty" json:"role,omitempty"`
}

// IsAdmin reports whether the user holds the admin role. Safe on nil.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// TokenClaims is the decoded identity payload embedded in a verified bearer
// token. Raw carries the full claim set as signed.
type TokenClaims struct {
	Email string
	Raw   map[string]interface{}
}
