package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosterd/rosterd/pkg/core/services"
)

// DuplicateVersionCmd creates the duplicateVersion command
func DuplicateVersionCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duplicateVersion <version>",
		Short: "Copy a version into a fresh draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseVersion(args[0])
			if err != nil {
				return err
			}
			notes, _ := cmd.Flags().GetString("notes")

			newVersion, err := services.DuplicateVersion(app.Ctx, app.Database, app.Logger, version, notes)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Version %d duplicated as draft version %d\n\n", version, newVersion)
			return nil
		},
	}

	cmd.Flags().String("notes", "", "Notes for the new draft")

	return cmd
}
