package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosterd/rosterd/pkg/core/services"
)

// GenerateScheduleCmd creates the generateSchedule command
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule <start> <end>",
		Short: "Generate a new schedule version for a date range",
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

			dryRun, _ := cmd.Flags().GetBool("dry-run")
			createEmpty, _ := cmd.Flags().GetBool("create-empty")
			notes, _ := cmd.Flags().GetString("notes")
			asJSON, _ := cmd.Flags().GetBool("json")

			result, err := services.GenerateSchedule(app.Ctx, app.Database, app.Cfg, app.Logger, start, end, services.GenerateOptions{
				DryRun:               dryRun,
				CreateEmptySchedules: createEmpty,
				Notes:                notes,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(result)
			}

			if len(result.Errors) > 0 {
				fmt.Printf("\nGeneration failed:\n")
				for _, e := range result.Errors {
					fmt.Printf("  ✗ %s\n", e)
				}
				return fmt.Errorf("schedule generation failed")
			}

			if dryRun {
				fmt.Printf("\n✓ Dry run complete (nothing persisted)\n\n")
			} else {
				fmt.Printf("\n✓ Schedule generated as version %d\n\n", result.Version)
			}
			fmt.Printf("Assignments: %d\n", result.Metrics.AssignmentCount)
			fmt.Printf("Fairness:    %.3f\n", result.Metrics.FairnessScore)

			if len(result.LoadNotes) > 0 {
				fmt.Printf("\nInput warnings:\n")
				for _, w := range result.LoadNotes {
					fmt.Printf("  ⚠ %s\n", w)
				}
			}
			if len(result.Warnings) > 0 {
				fmt.Printf("\nCoverage warnings:\n")
				for _, w := range result.Warnings {
					fmt.Printf("  ⚠ %s\n", w.Message)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.Flags().Bool("create-empty", false, "Emit placeholder rows for unassigned active employees")
	cmd.Flags().String("notes", "", "Notes to attach to the new version")
	cmd.Flags().Bool("json", false, "Print the full result as JSON")

	return cmd
}
