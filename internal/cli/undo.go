package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the most recent task change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		applied, err := Store.Undo()
		if err != nil {
			return fmt.Errorf("undoing: %w", err)
		}
		if !applied {
			fmt.Println("Nothing to undo.")
			return nil
		}

		fmt.Println("Undone.")
		if Store.CanRedo() {
			fmt.Println("Use 'taskdeck redo' to reapply.")
		}
		return nil
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the most recently undone task change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		applied, err := Store.Redo()
		if err != nil {
			return fmt.Errorf("redoing: %w", err)
		}
		if !applied {
			fmt.Println("Nothing to redo.")
			return nil
		}

		fmt.Println("Redone.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
}
