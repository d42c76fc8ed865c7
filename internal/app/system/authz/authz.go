// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/chalix/coursehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the current user's username, display name, Mongo
// ObjectID, and a found flag. If no user is present in context or the
// stored id is malformed, it returns "", "", NilObjectID, false —
// callers can trust that ok=true means a valid authenticated user.
func UserCtx(r *http.Request) (username string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed id in session - fail closed.
		return "", "", primitive.NilObjectID, false
	}
	return user.Username, user.Name, userID, true
}

// IsSuperuser reports whether the current request's user is platform staff.
func IsSuperuser(r *http.Request) bool {
	user, ok := auth.CurrentUser(r)
	return ok && user.IsSuperuser
}
