package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosterd/rosterd/pkg/core/services"
)

// DeleteVersionCmd creates the deleteVersion command
func DeleteVersionCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deleteVersion <version>",
		Short: "Delete a version and optionally its assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseVersion(args[0])
			if err != nil {
				return err
			}
			cascade, _ := cmd.Flags().GetBool("cascade")
			force, _ := cmd.Flags().GetBool("force")

			if err := services.DeleteVersion(app.Ctx, app.Database, app.Logger, version, cascade, force); err != nil {
				return err
			}

			fmt.Printf("\n✓ Version %d deleted\n\n", version)
			return nil
		},
	}

	cmd.Flags().Bool("cascade", false, "Also delete the version's assignments")
	cmd.Flags().Bool("force", false, "Allow deleting a PUBLISHED version")

	return cmd
}
