package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosterd/rosterd/pkg/core/services"
)

// ListVersionsCmd creates the listVersions command
func ListVersionsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listVersions",
		Short: "List all schedule versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			versions, err := services.ListVersions(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(versions)
			}

			fmt.Printf("\nFound %d versions:\n\n", len(versions))
			for _, v := range versions {
				base := ""
				if v.BaseVersion != nil {
					base = fmt.Sprintf("  (from v%d)", *v.BaseVersion)
				}
				fmt.Printf("  v%-4d %-10s %s..%s%s\n",
					v.Version, v.Status,
					v.DateRangeStart.Format("2006-01-02"), v.DateRangeEnd.Format("2006-01-02"), base)
				if v.Notes != "" {
					fmt.Printf("        %s\n", v.Notes)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print versions as JSON")

	return cmd
}
