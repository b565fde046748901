package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents an account record used for authentication.
// It contains the normalized identity and credential data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the store-assigned document identifier.
	// It is not exposed via JSON and is used only at the persistence layer.
	ID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	// Email is the unique user identifier, lower-cased before storage and
	// lookup. The original casing is preserved nowhere.
	Email string `bson:"email" json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a hash output, never plaintext.
	PasswordHash string `bson:"password_hash" json:"-"`
}

// CollectionName returns the default name of the document collection
// associated with the User model.
func (u User) CollectionName() string {
	return "users"
}
