// internal/cli/backfill.go
package cli

import (
	"context"
	"fmt"

	"github.com/chalix/coursehub/internal/app/bootstrap"
	prefstore "github.com/chalix/coursehub/internal/app/store/preferences"
	userstore "github.com/chalix/coursehub/internal/app/store/users"
	"github.com/chalix/coursehub/internal/app/system/langpref"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	backfillBatchSize int
	backfillDryRun    bool
)

// backfillLanguageCmd assigns the default display language to existing
// users who never picked one. Safe to re-run; users with a preference
// are left alone.
var backfillLanguageCmd = &cobra.Command{
	Use:   "backfill-language",
	Short: "Assign the default language to users without a language preference",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		_, appCfg, err := bootstrap.LoadConfig(logger)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		deps, err := bootstrap.ConnectDB(ctx, nil, appCfg, logger)
		if err != nil {
			return err
		}
		defer deps.MongoClient.Disconnect(ctx)

		users := userstore.New(deps.MongoDatabase, logger)
		prefs := prefstore.New(deps.MongoDatabase)

		_, err = langpref.Backfill(ctx, users, prefs, langpref.Options{
			BatchSize: backfillBatchSize,
			DryRun:    backfillDryRun,
		}, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)
		return err
	},
}

func init() {
	backfillLanguageCmd.Flags().IntVar(&backfillBatchSize, "batch-size", langpref.DefaultBatchSize,
		"users fetched per database page")
	backfillLanguageCmd.Flags().BoolVar(&backfillDryRun, "dry-run", false,
		"report what would change without writing")
	rootCmd.AddCommand(backfillLanguageCmd)
}
