package main

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/VershaDubey/Hindalco-Versha/internal/config"
	"github.com/VershaDubey/Hindalco-Versha/internal/enrich"
	"github.com/VershaDubey/Hindalco-Versha/internal/handler"
	"github.com/VershaDubey/Hindalco-Versha/internal/logger"
	"github.com/VershaDubey/Hindalco-Versha/internal/notify"
	"github.com/VershaDubey/Hindalco-Versha/internal/salesforce"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "case-intake").Info("starting service")

	cfg := config.Load()

	// Certificate verification stays on unless a deployment explicitly opts
	// out for a broken internal proxy.
	insecure := os.Getenv("TLS_INSECURE_SKIP_VERIFY") == "true"
	if insecure {
		log.Warn("TLS certificate verification disabled")
	}

	enricher := enrich.NewClient(cfg.OpenAI, newHTTPClient(20*time.Second, insecure))
	submitter := salesforce.NewClient(cfg.Salesforce, newHTTPClient(15*time.Second, insecure))
	mailer := notify.NewMailer(cfg.SMTP)
	messenger := notify.NewWhatsAppClient(cfg.WhatsApp, newHTTPClient(15*time.Second, insecure))

	webhook := handler.NewWebhook(enricher, submitter, mailer, messenger)

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	mux.Handle("/webhook", webhook)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func newHTTPClient(timeout time.Duration, insecure bool) *http.Client {
	c := &http.Client{Timeout: timeout}
	if insecure {
		c.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return c
}
