// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chalix/coursehub/internal/app/system/normalize"
	"github.com/chalix/coursehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateEmail is returned when a create/update collides with the
	// unique email index.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrDuplicateUsername is returned when a create collides with the
	// unique username index.
	ErrDuplicateUsername = errors.New("a user with this username already exists")

	errUsernameRequired = errors.New("username is required")
)

// FieldError is a validation failure tied to a single field, surfaced to
// the caller of the save operation instead of reaching storage.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Email guard errors. Empty emails used to slip through to the unique
// email index and blow up as duplicate-key errors on the '' entry; the
// guard rejects them before any write.
var (
	errEmailRequired = &FieldError{Field: "email", Message: "Email field is required and cannot be empty."}
	errEmailCleared  = &FieldError{Field: "email", Message: "Email field cannot be cleared or set to empty."}
)

type Store struct {
	c   *mongo.Collection
	log *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{c: db.Collection("users"), log: logger}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername looks up a user by case/diacritic-insensitive username.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"username_ci": text.Fold(username)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields.
// A user with an empty or all-whitespace email is rejected with a
// FieldError and never reaches storage.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Username = normalize.Username(u.Username)
	u.UsernameCI = text.Fold(u.Username)
	u.FullName = normalize.Name(u.FullName)
	u.Email = normalize.Email(u.Email)

	if u.Username == "" {
		return models.User{}, errUsernameRequired
	}
	if u.Email == "" {
		s.log.Error("attempted to create user with empty email",
			zap.String("username", u.Username))
		return models.User{}, errEmailRequired
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, dupError(err)
		}
		return models.User{}, err
	}
	return u, nil
}

// ProfileUpdate holds the mutable profile fields.
type ProfileUpdate struct {
	FullName string
	Email    string
	IsActive bool
}

// UpdateProfile updates a user's profile, enforcing the email guard:
// once a user has a non-empty email it can be changed but never cleared.
// If the record has vanished (race with deletion) the update is treated
// as the new-record case: the email must still be non-empty.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) error {
	email := normalize.Email(upd.Email)

	original, err := s.GetByID(ctx, id)
	switch {
	case err == mongo.ErrNoDocuments:
		// Record is gone; validate as if creating.
		if email == "" {
			s.log.Error("attempted to save user with empty email",
				zap.String("user_id", id.Hex()))
			return errEmailRequired
		}
	case err != nil:
		return err
	default:
		if original.Email != "" && email == "" {
			s.log.Error("attempted to clear email for user",
				zap.String("username", original.Username))
			return errEmailCleared
		}
	}

	set := bson.M{
		"full_name":  normalize.Name(upd.FullName),
		"email":      email,
		"is_active":  upd.IsActive,
		"updated_at": time.Now(),
	}
	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		if wafflemongo.IsDup(err) {
			return dupError(err)
		}
		return err
	}
	return nil
}

// UpdateEmail changes just the email, with the same guard as UpdateProfile.
func (s *Store) UpdateEmail(ctx context.Context, id primitive.ObjectID, email string) error {
	email = normalize.Email(email)

	original, err := s.GetByID(ctx, id)
	switch {
	case err == mongo.ErrNoDocuments:
		if email == "" {
			s.log.Error("attempted to save user with empty email",
				zap.String("user_id", id.Hex()))
			return errEmailRequired
		}
	case err != nil:
		return err
	default:
		if original.Email != "" && email == "" {
			s.log.Error("attempted to clear email for user",
				zap.String("username", original.Username))
			return errEmailCleared
		}
	}

	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"email": email, "updated_at": time.Now()}})
	if err != nil && wafflemongo.IsDup(err) {
		return dupError(err)
	}
	return err
}

// ListActiveWithEmail returns up to limit active users with a non-empty
// email whose _id sorts after afterID, in _id order. Used by the
// language backfill to scan the user base in fixed-size pages.
func (s *Store) ListActiveWithEmail(ctx context.Context, afterID primitive.ObjectID, limit int64) ([]models.User, error) {
	filter := bson.M{
		"is_active": true,
		"email":     bson.M{"$nin": bson.A{"", nil}},
	}
	if afterID != primitive.NilObjectID {
		filter["_id"] = bson.M{"$gt": afterID}
	}

	find := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, find)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CountActiveWithEmail counts users the backfill will consider.
func (s *Store) CountActiveWithEmail(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"is_active": true,
		"email":     bson.M{"$nin": bson.A{"", nil}},
	})
}

// dupError maps a duplicate-key error to the violated field. The message
// from the server names the index.
func dupError(err error) error {
	if strings.Contains(err.Error(), "username_ci") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}
