package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"aiMarketingMsg/pkg/config"
	"aiMarketingMsg/pkg/logger"

	"github.com/pobyzaarif/goshortcute"
)

// MailjetRepository delivers account emails (verification, password reset)
// through Mailjet. Marketing messages themselves never go through this
// channel, they are only generated and stored.
type MailjetRepository struct {
	cfg    config.MailjetConfig
	client *http.Client
}

func NewMailjetRepository(cfg config.MailjetConfig) *MailjetRepository {
	return &MailjetRepository{
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type sendPayload struct {
	Messages []mailMessage `json:"Messages"`
}

type mailParty struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type mailMessage struct {
	From     mailParty   `json:"From"`
	To       []mailParty `json:"To"`
	Subject  string      `json:"Subject"`
	TextPart string      `json:"TextPart"`
	HTMLPart string      `json:"HTMLPart"`
}

func (r *MailjetRepository) SendEmail(toName, toEmail, subject, body string) error {
	payload := sendPayload{
		Messages: []mailMessage{
			{
				From: mailParty{
					Email: r.cfg.MailjetSenderEmail,
					Name:  r.cfg.MailjetSenderName,
				},
				To:       []mailParty{{Email: toEmail, Name: toName}},
				Subject:  subject,
				TextPart: body,
				HTMLPart: body,
			},
		},
	}

	payloadByte, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, r.cfg.MailjetBaseUrl+"/v3.1/send", bytes.NewReader(payloadByte))
	if err != nil {
		return err
	}

	basicAuth := goshortcute.StringtoBase64Encode(r.cfg.MailjetBasicAuthUsername + ":" + r.cfg.MailjetBasicAuthPassword)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Basic "+basicAuth)

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	resBody, _ := io.ReadAll(res.Body)
	logger.Warn("mailjet returned non-2xx response", "status", res.StatusCode, "body", string(resBody))

	return fmt.Errorf("mailer service return negative response %v", res.StatusCode)
}
