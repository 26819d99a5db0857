// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the taskdeck engine as tools for AI assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/internal/observability"
	"github.com/taskdeck/taskdeck/pkg/models"
)

// Server wraps the task engine and exposes it as MCP tools.
type Server struct {
	server      *gomcp.Server
	store       *core.TaskStore
	alertEngine observability.AlertEngine
	metricsCalc observability.MetricsCalculator
	now         func() time.Time
}

// NewServer creates an MCP server over the given store. alertEngine and
// metricsCalc may be nil.
func NewServer(store *core.TaskStore, alertEngine observability.AlertEngine, metricsCalc observability.MetricsCalculator, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		store:       store,
		alertEngine: alertEngine,
		metricsCalc: metricsCalc,
		now:         time.Now,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "taskdeck", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type addTaskInput struct {
	Title        string   `json:"title" jsonschema:"required,the task title (must not be empty)"`
	Description  string   `json:"description,omitempty" jsonschema:"optional free-text description"`
	DueDate      string   `json:"due_date,omitempty" jsonschema:"optional due date in RFC3339 format"`
	ReminderTime string   `json:"reminder_time,omitempty" jsonschema:"optional reminder instant in RFC3339 format"`
	Priority     string   `json:"priority,omitempty" jsonschema:"high, medium, or low (default medium)"`
	Category     string   `json:"category,omitempty" jsonschema:"work, personal, health, shopping, or other (default other)"`
	Tags         []string `json:"tags,omitempty" jsonschema:"optional free-text labels"`
	Recurrence   string   `json:"recurrence,omitempty" jsonschema:"none, daily, weekly, or monthly (default none)"`
}

type taskOutput struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	DueDate      string   `json:"due_date,omitempty"`
	ReminderTime string   `json:"reminder_time,omitempty"`
	Priority     string   `json:"priority"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags,omitempty"`
	Completed    bool     `json:"completed"`
	CreatedAt    string   `json:"created_at"`
	CompletedAt  string   `json:"completed_at,omitempty"`
	Recurrence   string   `json:"recurrence"`
}

type listTasksInput struct {
	Filter   string `json:"filter,omitempty" jsonschema:"view filter: all, active, completed, today, or upcoming (default all)"`
	Priority string `json:"priority,omitempty" jsonschema:"filter by priority: high, medium, low, or all"`
	Category string `json:"category,omitempty" jsonschema:"filter by category, or all"`
	Search   string `json:"search,omitempty" jsonschema:"case-insensitive substring match against title, description, and tags"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type taskIDInput struct {
	TaskID string `json:"task_id" jsonschema:"required,the task's unique ID"`
}

type messageOutput struct {
	Message string `json:"message"`
}

type getStatsInput struct{}

type statsOutput struct {
	models.Stats
	Streak int `json:"streak"`
}

type historyInput struct{}

type historyOutput struct {
	Applied bool `json:"applied"`
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

type getAlertsInput struct{}

type getMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 24h). Defaults to 7d."`
}

type metricsOutput struct {
	TasksCreated   int `json:"tasks_created"`
	TasksCompleted int `json:"tasks_completed"`
	TasksDeleted   int `json:"tasks_deleted"`
	TasksRecurred  int `json:"tasks_recurred"`
	RemindersFired int `json:"reminders_fired"`
	EventCount     int `json:"event_count"`
}

type alertOutput struct {
	Condition   string `json:"condition"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	TriggeredAt string `json:"triggered_at"`
}

type getAlertsOutput struct {
	Alerts []alertOutput `json:"alerts"`
	Count  int           `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "add_task",
		Description: "Create a new task with optional due date, reminder, priority, category, tags, and recurrence.",
	}, s.handleAddTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks through the standard filtered, sorted view.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "toggle_complete",
		Description: "Toggle a task's completion state. Completing a recurring task schedules its next occurrence.",
	}, s.handleToggleComplete)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task by ID.",
	}, s.handleDeleteTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_stats",
		Description: "Get aggregate task statistics and the current completion streak.",
	}, s.handleGetStats)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "undo",
		Description: "Undo the most recent task mutation.",
	}, s.handleUndo)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "redo",
		Description: "Redo the most recently undone task mutation.",
	}, s.handleRedo)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_alerts",
		Description: "Evaluate and return active alerts (overdue tasks, heavy days, streak at risk).",
	}, s.handleGetAlerts)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Get activity metrics aggregated from the event log: tasks created, completed, reminders fired.",
	}, s.handleGetMetrics)
}

// --- Tool handlers ---

func (s *Server) handleAddTask(_ context.Context, _ *gomcp.CallToolRequest, input addTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.Title == "" {
		return errorResult("title is required"), taskOutput{}, nil
	}

	fields := core.TaskFields{
		Title:       input.Title,
		Description: input.Description,
		Tags:        input.Tags,
		Priority:    models.PriorityMedium,
		Category:    models.CategoryOther,
		Recurrence:  models.RecurrenceNone,
	}

	if input.Priority != "" {
		p := models.Priority(input.Priority)
		if !p.Valid() {
			return errorResult(fmt.Sprintf("invalid priority %q", input.Priority)), taskOutput{}, nil
		}
		fields.Priority = p
	}
	if input.Category != "" {
		c := models.Category(input.Category)
		if !c.Valid() {
			return errorResult(fmt.Sprintf("invalid category %q", input.Category)), taskOutput{}, nil
		}
		fields.Category = c
	}
	if input.Recurrence != "" {
		r := models.Recurrence(input.Recurrence)
		if !r.Valid() {
			return errorResult(fmt.Sprintf("invalid recurrence %q", input.Recurrence)), taskOutput{}, nil
		}
		fields.Recurrence = r
	}
	if input.DueDate != "" {
		due, err := time.Parse(time.RFC3339, input.DueDate)
		if err != nil {
			return errorResult(fmt.Sprintf("parsing due_date: %s", err)), taskOutput{}, nil
		}
		fields.DueDate = &due
	}
	if input.ReminderTime != "" {
		reminder, err := time.Parse(time.RFC3339, input.ReminderTime)
		if err != nil {
			return errorResult(fmt.Sprintf("parsing reminder_time: %s", err)), taskOutput{}, nil
		}
		fields.ReminderTime = &reminder
	}

	task, err := s.store.Add(fields)
	if err != nil {
		return errorResult(fmt.Sprintf("adding task: %s", err)), taskOutput{}, nil
	}
	return nil, taskToOutput(task), nil
}

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	filters := models.DefaultFilters()
	if input.Filter != "" {
		ft := models.FilterType(input.Filter)
		if !ft.Valid() {
			return errorResult(fmt.Sprintf("invalid filter %q", input.Filter)), listTasksOutput{}, nil
		}
		filters.Type = ft
	}
	if input.Priority != "" {
		filters.Priority = input.Priority
	}
	if input.Category != "" {
		filters.Category = input.Category
	}
	filters.SearchQuery = input.Search

	view := core.ApplyFilters(s.store.All(), filters, s.now())
	out := listTasksOutput{
		Tasks: make([]taskOutput, len(view)),
		Count: len(view),
	}
	for i, t := range view {
		out.Tasks[i] = taskToOutput(t)
	}
	return nil, out, nil
}

func (s *Server) handleToggleComplete(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, messageOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), messageOutput{}, nil
	}
	if _, ok := s.store.Get(input.TaskID); !ok {
		return errorResult(fmt.Sprintf("task %s not found", input.TaskID)), messageOutput{}, nil
	}
	if err := s.store.ToggleComplete(input.TaskID); err != nil {
		return errorResult(fmt.Sprintf("toggling task %s: %s", input.TaskID, err)), messageOutput{}, nil
	}

	task, _ := s.store.Get(input.TaskID)
	state := "reopened"
	if task.Completed {
		state = "completed"
	}
	return nil, messageOutput{Message: fmt.Sprintf("task %s %s", input.TaskID, state)}, nil
}

func (s *Server) handleDeleteTask(_ context.Context, _ *gomcp.CallToolRequest, input taskIDInput) (*gomcp.CallToolResult, messageOutput, error) {
	if input.TaskID == "" {
		return errorResult("task_id is required"), messageOutput{}, nil
	}
	if _, ok := s.store.Get(input.TaskID); !ok {
		return errorResult(fmt.Sprintf("task %s not found", input.TaskID)), messageOutput{}, nil
	}
	if err := s.store.Delete(input.TaskID); err != nil {
		return errorResult(fmt.Sprintf("deleting task %s: %s", input.TaskID, err)), messageOutput{}, nil
	}
	return nil, messageOutput{Message: fmt.Sprintf("task %s deleted", input.TaskID)}, nil
}

func (s *Server) handleGetStats(_ context.Context, _ *gomcp.CallToolRequest, _ getStatsInput) (*gomcp.CallToolResult, statsOutput, error) {
	tasks := s.store.All()
	now := s.now()
	out := statsOutput{
		Stats:  core.CalculateStats(tasks, now),
		Streak: core.Streak(tasks, now),
	}
	return nil, out, nil
}

func (s *Server) handleUndo(_ context.Context, _ *gomcp.CallToolRequest, _ historyInput) (*gomcp.CallToolResult, historyOutput, error) {
	applied, err := s.store.Undo()
	if err != nil {
		return errorResult(fmt.Sprintf("undoing: %s", err)), historyOutput{}, nil
	}
	return nil, historyOutput{Applied: applied, CanUndo: s.store.CanUndo(), CanRedo: s.store.CanRedo()}, nil
}

func (s *Server) handleRedo(_ context.Context, _ *gomcp.CallToolRequest, _ historyInput) (*gomcp.CallToolResult, historyOutput, error) {
	applied, err := s.store.Redo()
	if err != nil {
		return errorResult(fmt.Sprintf("redoing: %s", err)), historyOutput{}, nil
	}
	return nil, historyOutput{Applied: applied, CanUndo: s.store.CanUndo(), CanRedo: s.store.CanRedo()}, nil
}

func (s *Server) handleGetAlerts(_ context.Context, _ *gomcp.CallToolRequest, _ getAlertsInput) (*gomcp.CallToolResult, getAlertsOutput, error) {
	if s.alertEngine == nil {
		return errorResult("alert engine not available"), getAlertsOutput{}, nil
	}

	alerts := s.alertEngine.Evaluate(s.store.All(), s.now())
	out := getAlertsOutput{
		Alerts: make([]alertOutput, len(alerts)),
		Count:  len(alerts),
	}
	for i, a := range alerts {
		out.Alerts[i] = alertOutput{
			Condition:   a.Condition,
			Severity:    string(a.Severity),
			Message:     a.Message,
			TriggeredAt: a.TriggeredAt.Format(time.RFC3339),
		}
	}
	return nil, out, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, input getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("metrics calculator not available"), metricsOutput{}, nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}
	since, err := parseSince(sinceStr, s.now())
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since: %s", err)), metricsOutput{}, nil
	}

	metrics, err := s.metricsCalc.Calculate(since)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), metricsOutput{}, nil
	}

	out := metricsOutput{
		TasksCreated:   metrics.TasksCreated,
		TasksCompleted: metrics.TasksCompleted,
		TasksDeleted:   metrics.TasksDeleted,
		TasksRecurred:  metrics.TasksRecurred,
		RemindersFired: metrics.RemindersFired,
		EventCount:     metrics.EventCount,
	}
	return nil, out, nil
}

// --- Helpers ---

// parseSince turns a window like "7d" or "24h" into the time it started.
func parseSince(s string, now time.Time) (time.Time, error) {
	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}
	var n int
	if _, err := fmt.Sscanf(s[:len(s)-1], "%d", &n); err != nil || n < 0 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}
	switch s[len(s)-1] {
	case 'd':
		return now.AddDate(0, 0, -n), nil
	case 'h':
		return now.Add(-time.Duration(n) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("invalid duration %q: use e.g. 7d or 24h", s)
	}
}

func taskToOutput(t models.Task) taskOutput {
	out := taskOutput{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Category:    string(t.Category),
		Tags:        t.Tags,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		Recurrence:  string(t.Recurrence),
	}
	if t.DueDate != nil {
		out.DueDate = t.DueDate.Format(time.RFC3339)
	}
	if t.ReminderTime != nil {
		out.ReminderTime = t.ReminderTime.Format(time.RFC3339)
	}
	if t.CompletedAt != nil {
		out.CompletedAt = t.CompletedAt.Format(time.RFC3339)
	}
	return out
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
