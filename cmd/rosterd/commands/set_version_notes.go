package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosterd/rosterd/pkg/core/services"
)

// SetVersionNotesCmd creates the setVersionNotes command
func SetVersionNotesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setVersionNotes <version> <notes>",
		Short: "Replace the notes on a version",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseVersion(args[0])
			if err != nil {
				return err
			}

			if err := services.SetVersionNotes(app.Ctx, app.Database, app.Logger, version, args[1]); err != nil {
				return err
			}

			fmt.Printf("\n✓ Notes updated on version %d\n\n", version)
			return nil
		},
	}
}
