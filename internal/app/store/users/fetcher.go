// internal/app/store/users/fetcher.go
package userstore

import (
	"context"
	"fmt"

	"github.com/chalix/coursehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Fetcher adapts the user store to auth.UserFetcher so the session
// middleware can rehydrate the signed-in user on every request.
type Fetcher struct {
	store *Store
}

func NewFetcher(db *mongo.Database, logger *zap.Logger) *Fetcher {
	return &Fetcher{store: New(db, logger)}
}

// FetchSessionUser resolves the session's stored id to a live account.
// Disabled accounts resolve to (nil, nil) so the session silently drops
// back to anonymous.
func (f *Fetcher) FetchSessionUser(ctx context.Context, idHex string) (*auth.SessionUser, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", idHex, err)
	}

	u, err := f.store.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, nil
	}

	return &auth.SessionUser{
		ID:          u.ID.Hex(),
		Username:    u.Username,
		Name:        u.FullName,
		Email:       u.Email,
		IsSuperuser: u.IsSuperuser,
	}, nil
}
