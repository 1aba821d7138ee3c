// Package salesforce creates support cases through the Salesforce Apex REST
// case service, authenticating with the OAuth password grant. Both calls are
// one-shot: a failure here is fatal for the request.
package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/VershaDubey/Hindalco-Versha/internal/config"
	"github.com/VershaDubey/Hindalco-Versha/internal/logger"
	"github.com/VershaDubey/Hindalco-Versha/internal/types"
)

// casePath is the Apex REST service the case record is posted to, relative
// to the instance URL the token exchange returns.
const casePath = "/services/apexrest/caseservice"

// AuthError marks a failed or incomplete token exchange.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("salesforce auth failed: status=%d body=%s", e.Status, e.Body)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
}

type Client struct {
	httpClient *http.Client
	cfg        config.SalesforceConfig
	log        *logger.Logger
}

func NewClient(cfg config.SalesforceConfig, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		httpClient: hc,
		cfg:        cfg,
		log:        logger.New(),
	}
}

// Submit exchanges credentials for a token and posts the case record.
func (c *Client) Submit(ctx context.Context, rec types.CaseRecord) (*types.CaseResult, error) {
	tok, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}
	return c.createCase(ctx, tok, rec)
}

// getToken runs the password-grant exchange against the login endpoint.
func (c *Client) getToken(ctx context.Context) (tokenResponse, error) {
	var tok tokenResponse

	if err := c.cfg.Validate(); err != nil {
		return tok, err
	}

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("username", c.cfg.Username)
	form.Set("password", c.cfg.Password)

	endpoint := strings.TrimRight(c.cfg.LoginURL, "/") + "/services/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return tok, fmt.Errorf("new token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return tok, fmt.Errorf("call token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return tok, &AuthError{Status: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return tok, &AuthError{Status: resp.StatusCode, Body: string(body)}
	}
	if tok.AccessToken == "" || tok.InstanceURL == "" {
		return tok, &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	c.log.WithField("component", "salesforce").
		WithField("instance_url", tok.InstanceURL).
		Debug("token acquired")
	return tok, nil
}

func (c *Client) createCase(ctx context.Context, tok tokenResponse, rec types.CaseRecord) (*types.CaseResult, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal case record: %w", err)
	}

	endpoint := strings.TrimRight(tok.InstanceURL, "/") + casePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("new case request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call case service: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("case service error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var result types.CaseResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode case response: %w body=%s", err, string(body))
	}
	result.Raw = body

	c.log.WithField("component", "salesforce").
		WithField("case_number", result.CaseNumber).
		WithField("case_id", result.ID).
		Info("case created")
	return &result, nil
}
