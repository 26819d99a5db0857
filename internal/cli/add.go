package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/pkg/models"
)

var (
	addDescription string
	addDue         string
	addRemind      string
	addPriority    string
	addCategory    string
	addTags        []string
	addRecurrence  string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new task with the given title.

Due dates and reminders accept either a date (2006-01-02) or a full
RFC3339 timestamp. Recurring tasks (--recur daily|weekly|monthly)
spawn their next occurrence when completed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		fields := core.TaskFields{
			Title:       strings.Join(args, " "),
			Description: addDescription,
			Tags:        addTags,
			Priority:    Cfg.DefaultPriority,
			Category:    Cfg.DefaultCategory,
			Recurrence:  models.RecurrenceNone,
		}
		if fields.Priority == "" {
			fields.Priority = models.PriorityMedium
		}
		if fields.Category == "" {
			fields.Category = models.CategoryOther
		}

		if addPriority != "" {
			p := models.Priority(addPriority)
			if !p.Valid() {
				return fmt.Errorf("invalid priority %q (use high, medium, or low)", addPriority)
			}
			fields.Priority = p
		}
		if addCategory != "" {
			c := models.Category(addCategory)
			if !c.Valid() {
				return fmt.Errorf("invalid category %q (use work, personal, health, shopping, or other)", addCategory)
			}
			fields.Category = c
		}
		if addRecurrence != "" {
			r := models.Recurrence(addRecurrence)
			if !r.Valid() {
				return fmt.Errorf("invalid recurrence %q (use none, daily, weekly, or monthly)", addRecurrence)
			}
			fields.Recurrence = r
		}
		if addDue != "" {
			due, err := parseWhen(addDue)
			if err != nil {
				return fmt.Errorf("parsing --due: %w", err)
			}
			fields.DueDate = &due
		}
		if addRemind != "" {
			remind, err := parseWhen(addRemind)
			if err != nil {
				return fmt.Errorf("parsing --remind: %w", err)
			}
			fields.ReminderTime = &remind
		}

		task, err := Store.Add(fields)
		if err != nil {
			return fmt.Errorf("adding task: %w", err)
		}

		fmt.Printf("Added task %s\n", shortID(task.ID))
		fmt.Printf("  Title:    %s\n", task.Title)
		fmt.Printf("  Priority: %s\n", task.Priority)
		fmt.Printf("  Category: %s\n", task.Category)
		if task.DueDate != nil {
			fmt.Printf("  Due:      %s\n", task.DueDate.Format("2006-01-02 15:04"))
		}
		if task.ReminderTime != nil {
			fmt.Printf("  Reminder: %s\n", task.ReminderTime.Format("2006-01-02 15:04"))
		}
		if task.Recurrence != models.RecurrenceNone {
			fmt.Printf("  Repeats:  %s\n", task.Recurrence)
		}
		return nil
	},
}

// parseWhen parses a date (2006-01-02, local midnight) or an RFC3339 timestamp.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (use 2006-01-02 or RFC3339)", s)
	}
	return t, nil
}

func init() {
	addCmd.Flags().StringVarP(&addDescription, "desc", "d", "", "Task description")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (2006-01-02 or RFC3339)")
	addCmd.Flags().StringVar(&addRemind, "remind", "", "Reminder time (2006-01-02 or RFC3339)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Priority (high, medium, low)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Category (work, personal, health, shopping, other)")
	addCmd.Flags().StringSliceVarP(&addTags, "tags", "t", nil, "Comma-separated tags")
	addCmd.Flags().StringVarP(&addRecurrence, "recur", "r", "", "Recurrence (daily, weekly, monthly)")
	rootCmd.AddCommand(addCmd)
}
