// internal/cli/root.go
package cli

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the coursehubctl admin tool.
var rootCmd = &cobra.Command{
	Use:          "coursehubctl",
	Short:        "CourseHub administration commands",
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
