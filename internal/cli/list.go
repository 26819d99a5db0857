package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/pkg/models"
)

var (
	listFilter   string
	listPriority string
	listCategory string
	listSearch   string
	listJSON     bool
)

// List row styles.
var (
	priorityHighStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	priorityMediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	priorityLowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	completedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	overdueStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	tagStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks through the standard filtered, sorted view.

Incomplete tasks come first, ordered by priority, then due date, then
creation time. Use --filter for the view (all, active, completed, today,
upcoming) and --search for a case-insensitive match against title,
description, and tags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Store == nil {
			return fmt.Errorf("task store not initialized")
		}

		filters := models.DefaultFilters()
		if listFilter != "" {
			ft := models.FilterType(listFilter)
			if !ft.Valid() {
				return fmt.Errorf("invalid filter %q (use all, active, completed, today, or upcoming)", listFilter)
			}
			filters.Type = ft
		}
		if listPriority != "" {
			filters.Priority = listPriority
		}
		if listCategory != "" {
			filters.Category = listCategory
		}
		filters.SearchQuery = listSearch

		now := time.Now()
		view := core.ApplyFilters(Store.All(), filters, now)

		if listJSON {
			data, err := json.MarshalIndent(view, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting tasks as JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if len(view) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		for _, task := range view {
			fmt.Println(renderTaskLine(task, now))
		}
		fmt.Printf("\n%d task(s)\n", len(view))
		return nil
	},
}

// renderTaskLine formats one task as a styled single-line row.
func renderTaskLine(task models.Task, now time.Time) string {
	mark := "[ ]"
	if task.Completed {
		mark = "[x]"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s", mark, shortID(task.ID), styleForPriority(task.Priority).Render(string(task.Priority)))

	title := task.Title
	if task.Completed {
		title = completedStyle.Render(title)
	}
	fmt.Fprintf(&b, "  %s", title)

	if task.DueDate != nil {
		due := task.DueDate.Format("2006-01-02")
		if !task.Completed && task.DueDate.Before(now) {
			due = overdueStyle.Render(due + " (overdue)")
		}
		fmt.Fprintf(&b, "  due %s", due)
	}
	if task.Recurrence != models.RecurrenceNone {
		fmt.Fprintf(&b, "  ↻ %s", task.Recurrence)
	}
	for _, tag := range task.Tags {
		fmt.Fprintf(&b, " %s", tagStyle.Render("#"+tag))
	}
	return b.String()
}

func styleForPriority(p models.Priority) lipgloss.Style {
	switch p {
	case models.PriorityHigh:
		return priorityHighStyle
	case models.PriorityMedium:
		return priorityMediumStyle
	case models.PriorityLow:
		return priorityLowStyle
	default:
		return lipgloss.NewStyle()
	}
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "View filter (all, active, completed, today, upcoming)")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "Filter by priority (high, medium, low)")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Search title, description, and tags")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output tasks as JSON")
	rootCmd.AddCommand(listCmd)
}
