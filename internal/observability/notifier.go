package observability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/taskdeck/taskdeck/pkg/models"
)

// Notifier delivers a reminder notification for a task.
type Notifier interface {
	Notify(task models.Task) error
}

// slackNotifier posts reminder messages to a Slack webhook.
type slackNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewSlackNotifier creates a Notifier that posts reminders to the given
// Slack webhook URL.
func NewSlackNotifier(webhookURL string) Notifier {
	return &slackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{},
	}
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Notify posts a reminder message built from the task's title, description
// and due date.
func (s *slackNotifier) Notify(task models.Task) error {
	body, err := json.Marshal(s.buildMessage(task))
	if err != nil {
		return fmt.Errorf("marshaling slack message: %w", err)
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting to slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *slackNotifier) buildMessage(task models.Task) slackMessage {
	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: "⏰ Task reminder"},
		},
		{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: fmt.Sprintf("*%s*", task.Title)},
		},
	}
	if task.Description != "" {
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: task.Description},
		})
	}
	if task.DueDate != nil {
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: fmt.Sprintf("_Due %s_", task.DueDate.Format("2006-01-02"))},
		})
	}
	return slackMessage{Blocks: blocks}
}
