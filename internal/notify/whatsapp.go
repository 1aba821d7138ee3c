package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/VershaDubey/Hindalco-Versha/internal/config"
	"github.com/VershaDubey/Hindalco-Versha/internal/logger"
)

// countryPrefix is prepended to the normalized 10-digit mobile number.
const countryPrefix = "91"

type WhatsAppClient struct {
	httpClient *http.Client
	cfg        config.WhatsAppConfig
	log        *logger.Logger
}

func NewWhatsAppClient(cfg config.WhatsAppConfig, hc *http.Client) *WhatsAppClient {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &WhatsAppClient{
		httpClient: hc,
		cfg:        cfg,
		log:        logger.New(),
	}
}

type templateMessage struct {
	MessagingProduct string          `json:"messaging_product"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Template         messageTemplate `json:"template"`
}

type messageTemplate struct {
	Name       string              `json:"name"`
	Language   templateLanguage    `json:"language"`
	Components []templateComponent `json:"components"`
}

type templateLanguage struct {
	Code string `json:"code"`
}

type templateComponent struct {
	Type       string          `json:"type"`
	Parameters []templateParam `json:"parameters"`
}

type templateParam struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SendTemplate posts the configured template to the customer's number with
// the given positional body parameters. The order must match the template's
// placeholders.
func (c *WhatsAppClient) SendTemplate(ctx context.Context, mobile string, params []string) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	if mobile == "" {
		return fmt.Errorf("whatsapp: no destination number")
	}

	textParams := make([]templateParam, 0, len(params))
	for _, p := range params {
		textParams = append(textParams, templateParam{Type: "text", Text: p})
	}

	msg := templateMessage{
		MessagingProduct: "whatsapp",
		To:               countryPrefix + mobile,
		Type:             "template",
		Template: messageTemplate{
			Name:     c.cfg.TemplateName,
			Language: templateLanguage{Code: c.cfg.LangCode},
			Components: []templateComponent{
				{Type: "body", Parameters: textParams},
			},
		},
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal whatsapp payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", strings.TrimRight(c.cfg.APIURL, "/"), c.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call whatsapp api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp error: status=%d body=%s", resp.StatusCode, respBody)
	}

	c.log.WithField("component", "whatsapp").
		WithField("to", msg.To).
		WithField("template", c.cfg.TemplateName).
		Info("template message sent")
	return nil
}
