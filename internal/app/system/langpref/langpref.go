// internal/app/system/langpref/langpref.go
//
// Default display-language assignment. New accounts get Vietnamese as
// their platform language unless they have already picked one; the
// single trigger is a successful login, with a batch backfill for
// accounts that predate the feature.
package langpref

import (
	"context"

	prefstore "github.com/chalix/coursehub/internal/app/store/preferences"
	"github.com/chalix/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultLanguage is the platform-wide default language code.
const DefaultLanguage = "vi"

// EnsureDefault sets the user's language preference to the platform
// default if no preference exists. It never overwrites a value the user
// already has, however it got there. Failures are logged and swallowed:
// a preference hiccup must not break login.
func EnsureDefault(ctx context.Context, prefs *prefstore.Store, userID primitive.ObjectID, username string, logger *zap.Logger) {
	wrote, err := prefs.SetIfAbsent(ctx, userID, models.LanguageKey, DefaultLanguage)
	if err != nil {
		logger.Warn("failed to set default language preference",
			zap.String("username", username),
			zap.Error(err))
		return
	}
	if wrote {
		logger.Info("assigned default language",
			zap.String("username", username),
			zap.String("language", DefaultLanguage))
	}
}
