// internal/domain/models/preference.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LanguageKey is the preference key controlling the display language.
const LanguageKey = "pref-lang"

// UserPreference is a per-user key/value setting. At most one record
// exists per (user, key); the preference store enforces the unique index.
type UserPreference struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Key       string             `bson:"key" json:"key"`
	Value     string             `bson:"value" json:"value"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
