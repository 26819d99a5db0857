package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/pkg/models"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display task statistics and the completion streak",
	Long: `Display aggregate statistics: totals, pending counts by priority,
overdue and due-today counts, completion rate, and the current streak
of consecutive days with at least one completion.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		tasks := Store.All()
		now := time.Now()
		stats := core.CalculateStats(tasks, now)
		streak := core.Streak(tasks, now)

		if statsJSON {
			out := struct {
				models.Stats
				Streak int `json:"streak"`
			}{stats, streak}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting stats as JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println("Task statistics")
		fmt.Printf("  %-18s %d\n", "Total:", stats.Total)
		fmt.Printf("  %-18s %d\n", "Completed:", stats.Completed)
		fmt.Printf("  %-18s %d\n", "Pending:", stats.Pending)
		fmt.Printf("  %-18s %d high / %d medium / %d low\n", "Pending priority:",
			stats.HighPriority, stats.MediumPriority, stats.LowPriority)
		fmt.Printf("  %-18s %d\n", "Overdue:", stats.Overdue)
		fmt.Printf("  %-18s %d\n", "Due today:", stats.DueToday)
		fmt.Printf("  %-18s %d\n", "Recurring:", stats.Recurring)
		fmt.Printf("  %-18s %d%%\n", "Completion rate:", stats.CompletionRate)
		fmt.Printf("  %-18s %d day(s)\n", "Streak:", streak)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}
