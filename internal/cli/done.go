package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Toggle a task's completion state",
	Long: `Mark a task complete, or reopen it if it is already complete.

Completing a recurring task schedules its next occurrence. A unique ID
prefix is accepted in place of the full ID.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := resolveTaskID(args[0])
		if err != nil {
			return err
		}

		if err := Store.ToggleComplete(task.ID); err != nil {
			return fmt.Errorf("toggling task %s: %w", shortID(task.ID), err)
		}

		updated, _ := Store.Get(task.ID)
		if updated.Completed {
			fmt.Printf("Completed %s: %s\n", shortID(task.ID), task.Title)
		} else {
			fmt.Printf("Reopened %s: %s\n", shortID(task.ID), task.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
