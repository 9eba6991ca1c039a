package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosterd/rosterd/pkg/core/services"
)

// ViewScheduleCmd creates the viewSchedule command
func ViewScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewSchedule <start> <end>",
		Short: "View stored assignments for a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate(args[0])
			if err != nil {
				return err
			}
			end, err := parseDate(args[1])
			if err != nil {
				return err
			}

			var version *int
			if v, _ := cmd.Flags().GetInt("version"); v > 0 {
				version = &v
			}
			asJSON, _ := cmd.Flags().GetBool("json")

			assignments, err := services.ViewSchedule(app.Ctx, app.Database, app.Logger, start, end, version)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(assignments)
			}

			fmt.Printf("\nFound %d assignments:\n\n", len(assignments))
			for _, a := range assignments {
				if a.IsPlaceholder() {
					fmt.Printf("  %s  %-12s  (no shift)  v%d\n", a.Date.Format("2006-01-02"), a.EmployeeID, a.Version)
					continue
				}
				fmt.Printf("  %s  %-12s  %s-%s  break %dm  v%d %s\n",
					a.Date.Format("2006-01-02"), a.EmployeeID, a.Start, a.End, a.BreakMinutes, a.Version, a.Status)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("version", 0, "Restrict to one schedule version")
	cmd.Flags().Bool("json", false, "Print assignments as JSON")

	return cmd
}
