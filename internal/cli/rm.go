package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task",
	Long: `Delete a task by ID or unique ID prefix.

Deletion is recorded in history and can be reversed with undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := resolveTaskID(args[0])
		if err != nil {
			return err
		}

		if err := Store.Delete(task.ID); err != nil {
			return fmt.Errorf("deleting task %s: %w", shortID(task.ID), err)
		}

		fmt.Printf("Deleted %s: %s\n", shortID(task.ID), task.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
