package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Las-Vejas/shawty/internal/config"
	"github.com/Las-Vejas/shawty/internal/models"
	"github.com/Las-Vejas/shawty/pkg/logger"
)

var slackClient = &http.Client{Timeout: 5 * time.Second}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Fields   []slackText `json:"fields,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// SendLoopProtectionAlert notifies the ops channel that a user tried to
// create or update a link pointing back at this service. Best-effort only:
// a missing webhook URL skips the alert, and delivery failures are logged,
// never propagated — the caller has already rejected the link either way.
func SendLoopProtectionAlert(user *models.User, action string) {
	webhookURL := config.AppConfig.SlackWebhookURL
	if webhookURL == "" {
		return
	}

	mention := user.Email
	if user.SlackID != "" {
		mention = "<@" + user.SlackID + ">"
	}

	payload := map[string]interface{}{
		"text": "🚨 Loop Protection Alert",
		"blocks": []slackBlock{
			{
				Type: "header",
				Text: &slackText{Type: "plain_text", Text: "🚨 Attempted Self-Referencing Link", Emoji: true},
			},
			{
				Type: "section",
				Fields: []slackText{
					{Type: "mrkdwn", Text: "*User:*\n" + user.DisplayName()},
					{Type: "mrkdwn", Text: "*Action:*\n" + action},
					{Type: "mrkdwn", Text: "*Email:*\n" + user.Email},
					{Type: "mrkdwn", Text: "*Slack ID:*\n" + mention},
				},
			},
			{
				Type: "context",
				Elements: []slackText{
					{Type: "mrkdwn", Text: "Blocked at " + time.Now().Format(time.RFC3339)},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal Slack alert")
		return
	}

	resp, err := slackClient.Post(webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		logger.Warn().Err(err).Msg("Slack alert delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn().Int("status", resp.StatusCode).Msg("Slack alert rejected")
		return
	}

	logger.Info().Str("user_id", user.ID).Str("action", action).Msg("Loop protection alert sent")
}
