// Package config reads the deployment configuration from the environment.
package config

import (
	"fmt"
	"os"
)

type OpenAIConfig struct {
	APIKey string
	Model  string
	URL    string
}

type SalesforceConfig struct {
	LoginURL     string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
}

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

type WhatsAppConfig struct {
	APIURL        string
	Token         string
	PhoneNumberID string
	TemplateName  string
	LangCode      string
}

type Config struct {
	Port       string
	OpenAI     OpenAIConfig
	Salesforce SalesforceConfig
	SMTP       SMTPConfig
	WhatsApp   WhatsAppConfig
}

// Load reads everything from the environment. Secrets are not validated
// here: each client checks its own credentials before sending, so a missing
// notification token does not stop case intake.
func Load() Config {
	return Config{
		Port: envOr("PORT", "8080"),
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  envOr("OPENAI_MODEL", "gpt-4o-mini"),
			URL:    envOr("OPENAI_URL", "https://api.openai.com/v1/chat/completions"),
		},
		Salesforce: SalesforceConfig{
			LoginURL:     envOr("SF_LOGIN_URL", "https://login.salesforce.com"),
			ClientID:     os.Getenv("SF_CLIENT_ID"),
			ClientSecret: os.Getenv("SF_CLIENT_SECRET"),
			Username:     os.Getenv("SF_USERNAME"),
			Password:     os.Getenv("SF_PASSWORD"),
		},
		SMTP: SMTPConfig{
			Host: os.Getenv("SMTP_HOST"),
			Port: envOr("SMTP_PORT", "587"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			From: envOr("FROM_EMAIL", "noreply@hindalco-service.example"),
		},
		WhatsApp: WhatsAppConfig{
			APIURL:        envOr("WHATSAPP_API_URL", "https://graph.facebook.com/v19.0"),
			Token:         os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			TemplateName:  envOr("WHATSAPP_TEMPLATE_NAME", "service_case_update"),
			LangCode:      envOr("WHATSAPP_LANG_CODE", "en"),
		},
	}
}

// Validate fails fast when any credential for the token exchange is missing,
// rather than sending a malformed grant request.
func (c SalesforceConfig) Validate() error {
	missing := ""
	switch {
	case c.ClientID == "":
		missing = "SF_CLIENT_ID"
	case c.ClientSecret == "":
		missing = "SF_CLIENT_SECRET"
	case c.Username == "":
		missing = "SF_USERNAME"
	case c.Password == "":
		missing = "SF_PASSWORD"
	}
	if missing != "" {
		return fmt.Errorf("salesforce config: %s not set", missing)
	}
	return nil
}

func (c WhatsAppConfig) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("whatsapp config: WHATSAPP_TOKEN not set")
	}
	if c.PhoneNumberID == "" {
		return fmt.Errorf("whatsapp config: WHATSAPP_PHONE_NUMBER_ID not set")
	}
	return nil
}

func (c SMTPConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("smtp config: SMTP_HOST not set")
	}
	return nil
}

func (c OpenAIConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("openai config: OPENAI_API_KEY not set")
	}
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
