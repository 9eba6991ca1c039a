package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosterd/rosterd/pkg/core/model"
	"github.com/rosterd/rosterd/pkg/core/services"
)

// SetVersionStatusCmd creates the setVersionStatus command
func SetVersionStatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setVersionStatus <version> <DRAFT|PUBLISHED|ARCHIVED>",
		Short: "Transition a version through its lifecycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := parseVersion(args[0])
			if err != nil {
				return err
			}

			warnings, err := services.SetVersionStatus(app.Ctx, app.Database, app.Logger, version, model.VersionStatus(args[1]))
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Version %d is now %s\n", version, args[1])
			for _, w := range warnings {
				fmt.Printf("  ⚠ %s\n", w)
			}
			fmt.Println()

			return nil
		},
	}
}
