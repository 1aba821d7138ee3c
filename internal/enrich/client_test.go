package enrich

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VershaDubey/Hindalco-Versha/internal/config"
)

func newTestClient(url string) *Client {
	return NewClient(config.OpenAIConfig{
		APIKey: "test-key",
		Model:  "gpt-4o-mini",
		URL:    url,
	}, nil)
}

func completionResponse(t *testing.T, content string) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	require.NoError(t, err)
	return b
}

func TestEnrich(t *testing.T) {
	t.Run("empty transcript makes no call", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		got := c.Enrich(context.Background(), "   \n ")
		assert.Equal(t, "", got.TranslatedText)
		assert.Equal(t, "Neutral", got.Sentiment)
		assert.Zero(t, atomic.LoadInt32(&calls))
	})

	t.Run("successful enrichment", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gpt-4o-mini", req["model"])

			w.Write(completionResponse(t, `{"translatedText": "the cooler is leaking", "sentiment": "Negative"}`))
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		got := c.Enrich(context.Background(), "कूलर लीक हो रहा है")
		assert.Equal(t, "the cooler is leaking", got.TranslatedText)
		assert.Equal(t, "Negative", got.Sentiment)
	})

	t.Run("JSON wrapped in prose still parses", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(completionResponse(t, "Here you go:\n{\"translatedText\": \"hello\", \"sentiment\": \"Positive\"}\nDone."))
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		got := c.Enrich(context.Background(), "hola")
		assert.Equal(t, "hello", got.TranslatedText)
		assert.Equal(t, "Positive", got.Sentiment)
	})

	t.Run("missing fields default independently", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(completionResponse(t, `{"sentiment": "Positive"}`))
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		got := c.Enrich(context.Background(), "original text")
		assert.Equal(t, "original text", got.TranslatedText)
		assert.Equal(t, "Positive", got.Sentiment)
	})

	t.Run("unknown sentiment label becomes neutral", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(completionResponse(t, `{"translatedText": "ok", "sentiment": "mixed"}`))
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		got := c.Enrich(context.Background(), "theek hai")
		assert.Equal(t, "Neutral", got.Sentiment)
	})

	t.Run("server error falls back to transcript and neutral", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := newTestClient(srv.URL)
		got := c.Enrich(context.Background(), "original transcript")
		assert.Equal(t, "original transcript", got.TranslatedText)
		assert.Equal(t, "Neutral", got.Sentiment)
	})

	t.Run("transport failure falls back to transcript and neutral", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // force connection refused

		c := newTestClient(srv.URL)
		got := c.Enrich(context.Background(), "original transcript")
		assert.Equal(t, "original transcript", got.TranslatedText)
		assert.Equal(t, "Neutral", got.Sentiment)
	})

	t.Run("missing api key falls back without a call", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer srv.Close()

		c := NewClient(config.OpenAIConfig{URL: srv.URL}, nil)
		got := c.Enrich(context.Background(), "hello")
		assert.Equal(t, "hello", got.TranslatedText)
		assert.Equal(t, "Neutral", got.Sentiment)
		assert.Zero(t, atomic.LoadInt32(&calls))
	})
}
