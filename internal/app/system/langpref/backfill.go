// internal/app/system/langpref/backfill.go
package langpref

import (
	"context"
	"fmt"
	"io"

	prefstore "github.com/chalix/coursehub/internal/app/store/preferences"
	userstore "github.com/chalix/coursehub/internal/app/store/users"
	"github.com/chalix/coursehub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Options controls a backfill run.
type Options struct {
	// BatchSize is how many users are fetched per page. Zero or
	// negative means DefaultBatchSize.
	BatchSize int
	// DryRun reports what would change without writing anything.
	DryRun bool
}

// DefaultBatchSize is the page size used when none is given.
const DefaultBatchSize = 100

// progressEvery controls how often a progress line is printed.
const progressEvery = 100

// Stats summarizes a backfill run.
type Stats struct {
	Processed int
	Updated   int
	Failed    int
}

// Backfill walks every active user with an email and assigns the
// default language to those without a language preference. Safe to run
// repeatedly: users who already have any value are left alone, so a
// re-run after a partial failure only touches the remainder. Per-user
// failures are reported on errOut and the run continues.
func Backfill(ctx context.Context, users *userstore.Store, prefs *prefstore.Store, opts Options, out, errOut io.Writer, logger *zap.Logger) (Stats, error) {
	batch := int64(opts.BatchSize)
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	runID := uuid.NewString()
	logger.Info("language backfill starting",
		zap.String("run_id", runID),
		zap.Int64("batch_size", batch),
		zap.Bool("dry_run", opts.DryRun))

	var stats Stats
	after := primitive.NilObjectID

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		page, err := users.ListActiveWithEmail(ctx, after, batch)
		if err != nil {
			return stats, fmt.Errorf("list users after %s: %w", after.Hex(), err)
		}
		if len(page) == 0 {
			break
		}
		after = page[len(page)-1].ID

		for _, u := range page {
			stats.Processed++

			var wrote bool
			if opts.DryRun {
				has, err := prefs.Has(ctx, u.ID, models.LanguageKey)
				if err != nil {
					stats.Failed++
					fmt.Fprintf(errOut, "error checking preference for %s: %v\n", u.Username, err)
					continue
				}
				wrote = !has
			} else {
				wrote, err = prefs.SetIfAbsent(ctx, u.ID, models.LanguageKey, DefaultLanguage)
				if err != nil {
					stats.Failed++
					fmt.Fprintf(errOut, "error setting preference for %s: %v\n", u.Username, err)
					continue
				}
			}
			if wrote {
				stats.Updated++
			}

			if stats.Processed%progressEvery == 0 {
				fmt.Fprintf(out, "processed %d users...\n", stats.Processed)
			}
		}
	}

	verb := "updated"
	if opts.DryRun {
		verb = "would update"
	}
	fmt.Fprintf(out, "%s %d of %d users\n", verb, stats.Updated, stats.Processed)

	logger.Info("language backfill finished",
		zap.String("run_id", runID),
		zap.Int("processed", stats.Processed),
		zap.Int("updated", stats.Updated),
		zap.Int("failed", stats.Failed),
		zap.Bool("dry_run", opts.DryRun))

	return stats, nil
}
