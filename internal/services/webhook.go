package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/altproje-dev/altproje/internal/models"
	"github.com/altproje-dev/altproje/internal/types"
)

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Fields    []SlackField `json:"fields"`
	Footer    string       `json:"footer"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const webhookUsername = "Alt Proje Portalı"

// NotifySubmissionCreated posts a Slack-compatible message to the admin
// webhook when a new submission lands. Best effort: a failure is logged and
// the request that triggered it is unaffected.
func NotifySubmissionCreated(submission models.Submission, ownerName, schoolCode string) {
	webhookURL := os.Getenv("ADMIN_WEBHOOK_URL")
	if webhookURL == "" {
		return
	}

	payload := SlackWebhookRequest{
		Username:  webhookUsername,
		IconEmoji: ":memo:",
		Text:      "Yeni alt proje girişi",
		Attachments: []SlackAttachment{
			{
				Color: "good",
				Title: submission.Title,
				Text:  fmt.Sprintf("%s yeni bir alt proje kaydetti.", ownerName),
				Fields: []SlackField{
					{Title: "Alt Tür", Value: types.SubTypeLabels[submission.ProjectSubType], Short: true},
					{Title: "Proje Türü", Value: submission.ProjectType, Short: true},
					{Title: "Ana Alan", Value: submission.MainArea, Short: true},
					{Title: "Okul Kodu", Value: schoolCode, Short: true},
				},
				Footer:    "Alt Proje Yönetim Sistemi",
				Timestamp: time.Now().Unix(),
			},
		},
	}

	if err := sendSlackWebhook(webhookURL, payload); err != nil {
		log.Printf("Failed to send submission webhook: %v", err)
	}
}

func sendSlackWebhook(webhookURL string, payload SlackWebhookRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack payload: %w", err)
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send Slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}
