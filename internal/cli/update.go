package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/pkg/models"
)

var (
	updateTitle       string
	updateDescription string
	updateDue         string
	updateRemind      string
	updatePriority    string
	updateCategory    string
	updateTags        []string
	updateRecurrence  string
	updateClearDue    bool
	updateClearRemind bool
)

var updateCmd = &cobra.Command{
	Use:   "update <task-id>",
	Short: "Update a task's fields",
	Long: `Update one or more fields of an existing task.

Only flags that are set change the task. Use --clear-due or
--clear-remind to remove a due date or reminder.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task, err := resolveTaskID(args[0])
		if err != nil {
			return err
		}

		var priority models.Priority
		if cmd.Flags().Changed("priority") {
			priority = models.Priority(updatePriority)
			if !priority.Valid() {
				return fmt.Errorf("invalid priority %q (use high, medium, or low)", updatePriority)
			}
		}
		var category models.Category
		if cmd.Flags().Changed("category") {
			category = models.Category(updateCategory)
			if !category.Valid() {
				return fmt.Errorf("invalid category %q (use work, personal, health, shopping, or other)", updateCategory)
			}
		}
		var recurrence models.Recurrence
		if cmd.Flags().Changed("recur") {
			recurrence = models.Recurrence(updateRecurrence)
			if !recurrence.Valid() {
				return fmt.Errorf("invalid recurrence %q (use none, daily, weekly, or monthly)", updateRecurrence)
			}
		}
		var dueTime, remindTime *time.Time
		if cmd.Flags().Changed("due") {
			t, err := parseWhen(updateDue)
			if err != nil {
				return fmt.Errorf("parsing --due: %w", err)
			}
			dueTime = &t
		}
		if cmd.Flags().Changed("remind") {
			t, err := parseWhen(updateRemind)
			if err != nil {
				return fmt.Errorf("parsing --remind: %w", err)
			}
			remindTime = &t
		}

		err = Store.Update(task.ID, func(t *models.Task) {
			if cmd.Flags().Changed("title") {
				t.Title = updateTitle
			}
			if cmd.Flags().Changed("desc") {
				t.Description = updateDescription
			}
			if cmd.Flags().Changed("priority") {
				t.Priority = priority
			}
			if cmd.Flags().Changed("category") {
				t.Category = category
			}
			if cmd.Flags().Changed("tags") {
				t.Tags = updateTags
			}
			if cmd.Flags().Changed("recur") {
				t.Recurrence = recurrence
			}
			if dueTime != nil {
				t.DueDate = dueTime
			}
			if remindTime != nil {
				t.ReminderTime = remindTime
			}
			if updateClearDue {
				t.DueDate = nil
			}
			if updateClearRemind {
				t.ReminderTime = nil
			}
		})
		if err != nil {
			return fmt.Errorf("updating task %s: %w", shortID(task.ID), err)
		}

		fmt.Printf("Updated %s\n", shortID(task.ID))
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVarP(&updateDescription, "desc", "d", "", "New description")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "New due date (2006-01-02 or RFC3339)")
	updateCmd.Flags().StringVar(&updateRemind, "remind", "", "New reminder time (2006-01-02 or RFC3339)")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "New priority (high, medium, low)")
	updateCmd.Flags().StringVarP(&updateCategory, "category", "c", "", "New category")
	updateCmd.Flags().StringSliceVarP(&updateTags, "tags", "t", nil, "Replace tags")
	updateCmd.Flags().StringVarP(&updateRecurrence, "recur", "r", "", "New recurrence (none, daily, weekly, monthly)")
	updateCmd.Flags().BoolVar(&updateClearDue, "clear-due", false, "Remove the due date")
	updateCmd.Flags().BoolVar(&updateClearRemind, "clear-remind", false, "Remove the reminder")
	rootCmd.AddCommand(updateCmd)
}
