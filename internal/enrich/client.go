// Package enrich calls the inference service to translate a transcript to
// English and classify its sentiment. Enrichment is best effort: any failure
// degrades to the untranslated text and a Neutral sentiment, so a flaky LLM
// gateway can never block case creation.
package enrich

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
	"github.com/VershaDubey/Hindalco-Versha/internal/types"
)

const instruction = `You are a call-center transcript processor. ` +
	`Translate the transcript to English if it is not already English, and classify the customer's sentiment. ` +
	`Return ONLY a JSON object with exactly two keys: ` +
	`"translatedText" (the English transcript) and "sentiment" (one of Positive, Negative, Neutral).`

type Client struct {
	httpClient *http.Client
	cfg        config.OpenAIConfig
	log        *logger.Logger
}

func NewClient(cfg config.OpenAIConfig, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		httpClient: hc,
		cfg:        cfg,
		log:        logger.New(),
	}
}

// Enrich returns the translation + sentiment for a transcript. An empty or
// whitespace-only transcript short-circuits without a network call. Errors
// are logged and swallowed.
func (c *Client) Enrich(ctx context.Context, transcript string) types.Enrichment {
	if strings.TrimSpace(transcript) == "" {
		return types.Enrichment{TranslatedText: "", Sentiment: "Neutral"}
	}

	log := c.log.WithField("component", "enrich")

	out, err := c.call(ctx, transcript)
	if err != nil {
		log.WithError(err).Warn("enrichment failed, using transcript as-is with neutral sentiment")
		return types.Enrichment{TranslatedText: transcript, Sentiment: "Neutral"}
	}

	// each field defaults independently
	if out.TranslatedText == "" {
		out.TranslatedText = transcript
	}
	out.Sentiment = canonicalSentiment(out.Sentiment)
	return out
}

func (c *Client) call(ctx context.Context, transcript string) (types.Enrichment, error) {
	var out types.Enrichment

	if err := c.cfg.Validate(); err != nil {
		return out, err
	}

	reqBody := map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]string{
			{"role": "system", "content": instruction},
			{"role": "user", "content": transcript},
		},
		"temperature":     0.0,
		"response_format": map[string]string{"type": "json_object"},
	}
	data, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(data))
	if err != nil {
		return out, fmt.Errorf("new enrichment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, fmt.Errorf("call inference service: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return out, fmt.Errorf("inference service error: status=%d body=%s", resp.StatusCode, truncate(body, 256))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Choices) == 0 {
		return out, fmt.Errorf("unexpected inference response: %s", truncate(body, 256))
	}

	// the model may wrap the JSON in prose; take the outermost object
	content := parsed.Choices[0].Message.Content
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return out, fmt.Errorf("no JSON object in inference content: %s", truncate([]byte(content), 256))
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &out); err != nil {
		return out, fmt.Errorf("decode enrichment: %w", err)
	}
	return out, nil
}

func canonicalSentiment(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return "Positive"
	case "negative":
		return "Negative"
	default:
		return "Neutral"
	}
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
