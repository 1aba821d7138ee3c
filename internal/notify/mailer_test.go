package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VershaDubey/Hindalco-Versha/internal/config"
)

func TestFormatServiceTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"valid ISO timestamp", "2024-05-01T10:00:00Z", "01 May 2024, 10:00 AM"},
		{"afternoon", "2024-05-01T15:30:00Z", "01 May 2024, 03:30 PM"},
		{"unparseable passes through", "next tuesday", "next tuesday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatServiceTime(tt.in))
		})
	}
}

func TestEmailTemplate(t *testing.T) {
	t.Run("embeds case details", func(t *testing.T) {
		var buf bytes.Buffer
		err := emailTmpl.Execute(&buf, CaseEmail{
			To:          "asha@example.com",
			Reference:   "SR-00123456",
			Name:        "Asha",
			Address:     "12 MG Road, Mumbai",
			ServiceTime: "01 May 2024, 10:00 AM",
			Phone:       "9876543210",
			Email:       "asha@example.com",
		})
		require.NoError(t, err)
		html := buf.String()
		assert.Contains(t, html, "SR-00123456")
		assert.Contains(t, html, "Dear Asha")
		assert.Contains(t, html, "12 MG Road, Mumbai")
		assert.Contains(t, html, "01 May 2024, 10:00 AM")
		assert.Contains(t, html, "9876543210")
	})

	t.Run("falls back to generic salutation", func(t *testing.T) {
		var buf bytes.Buffer
		err := emailTmpl.Execute(&buf, CaseEmail{Reference: "SR-1"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Dear Customer")
	})
}

func TestMailerValidation(t *testing.T) {
	m := NewMailer(config.SMTPConfig{Port: "587"})
	err := m.Send(CaseEmail{To: "asha@example.com", Reference: "SR-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_HOST")
}
