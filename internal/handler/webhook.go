// Package handler wires the intake pipeline behind the inbound webhook:
// extract, normalize, classify, enrich, create the case, then notify.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/VershaDubey/Hindalco-Versha/internal/classify"
	"github.com/VershaDubey/Hindalco-Versha/internal/extract"
	"github.com/VershaDubey/Hindalco-Versha/internal/logger"
	"github.com/VershaDubey/Hindalco-Versha/internal/normalize"
	"github.com/VershaDubey/Hindalco-Versha/internal/notify"
	"github.com/VershaDubey/Hindalco-Versha/internal/types"
)

// Record constants fixed by the case service contract.
const (
	caseOperation = "createCase"
	caseOrigin    = "Phone"
	casePriority  = "Medium"
)

// Enricher produces the translation + sentiment for a transcript. It must
// never fail: degraded results carry safe defaults.
type Enricher interface {
	Enrich(ctx context.Context, transcript string) types.Enrichment
}

// CaseSubmitter creates the case in the CRM. A failure here is fatal for the
// request.
type CaseSubmitter interface {
	Submit(ctx context.Context, rec types.CaseRecord) (*types.CaseResult, error)
}

// Mailer sends the confirmation email.
type Mailer interface {
	Send(msg notify.CaseEmail) error
}

// Messenger sends the WhatsApp template message.
type Messenger interface {
	SendTemplate(ctx context.Context, mobile string, params []string) error
}

// Webhook handles the inbound call-transcript POST. Collaborators are
// injected so deployments configure their own clients and tests substitute
// fakes; nothing here is a package-level singleton.
type Webhook struct {
	enricher  Enricher
	submitter CaseSubmitter
	mailer    Mailer
	messenger Messenger
	log       *logger.Logger
}

func NewWebhook(e Enricher, s CaseSubmitter, m Mailer, w Messenger) *Webhook {
	return &Webhook{
		enricher:  e,
		submitter: s,
		mailer:    m,
		messenger: w,
		log:       logger.New(),
	}
}

func (h *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	reqLog := h.log.WithRequest(r).WithField("handler", "webhook")
	reqLog.Info("transcript payload received")

	var payload extract.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		reqLog.WithField("error", err.Error()).Warn("unreadable payload")
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}

	fields, err := extract.FromPayload(payload)
	if err != nil {
		var vErr *extract.ValidationError
		if errors.As(err, &vErr) {
			reqLog.WithField("error", vErr.Reason).Warn("payload rejected")
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": vErr.Reason})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}

	ctx := r.Context()

	email := normalize.Email(fields.Email)
	mobile := normalize.Mobile(fields.Mobile)
	duration := normalize.Duration(fields.Duration)
	category := classify.Category(fields.IssueDesc)

	enrichment := h.enricher.Enrich(ctx, fields.Transcript)

	rec := types.CaseRecord{
		Subject:       category,
		Operation:     caseOperation,
		UserName:      fields.Name,
		Email:         email,
		Mobile:        mobile,
		Pincode:       fields.Pincode,
		PreferredDate: fields.VisitDate,
		PreferredTime: fields.VisitDate,
		IssueDesc:     fields.IssueDesc,
		FullAddress:   fields.Address,
		RecordingLink: fields.Recording,
		Transcript:    enrichment.TranslatedText,
		CallDuration:  duration,
		Sentiment:     enrichment.Sentiment,
		Origin:        caseOrigin,
		Priority:      casePriority,
		Feedback:      fields.Feedback,
		Rate:          fields.Rating,
	}

	result, err := h.submitter.Submit(ctx, rec)
	if err != nil {
		reqLog.WithField("error", err.Error()).Error("case creation failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	caseRef := result.Reference()
	reqLog = reqLog.WithFields(logrus.Fields{"case_ref": caseRef, "category": category})
	reqLog.Info("case created")

	// Notifications are best effort: the case exists, so the caller gets a
	// success regardless of what happens past this point.
	h.notifyEmail(reqLog, fields, rec, result, caseRef)
	h.notifyWhatsApp(ctx, reqLog, rec, caseRef)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":            true,
		"message":            "Case created successfully",
		"salesforceResponse": json.RawMessage(result.Raw),
	})
}

func (h *Webhook) notifyEmail(reqLog *logrus.Entry, fields extract.Fields, rec types.CaseRecord, result *types.CaseResult, caseRef string) {
	to := result.Email
	if to == "" {
		to = rec.Email
	}
	if to == "" {
		reqLog.Info("no email address resolved, skipping confirmation email")
		return
	}

	msg := notify.CaseEmail{
		To:          to,
		Reference:   caseRef,
		Name:        fields.Name,
		Address:     rec.FullAddress,
		ServiceTime: notify.FormatServiceTime(rec.PreferredDate),
		Phone:       rec.Mobile,
		Email:       to,
	}
	if err := h.mailer.Send(msg); err != nil {
		reqLog.WithField("error", err.Error()).Warn("confirmation email failed")
	}
}

func (h *Webhook) notifyWhatsApp(ctx context.Context, reqLog *logrus.Entry, rec types.CaseRecord, caseRef string) {
	if rec.Mobile == "" {
		reqLog.Info("no mobile number resolved, skipping whatsapp message")
		return
	}

	params := []string{caseRef, notify.FormatServiceTime(rec.PreferredDate)}
	if err := h.messenger.SendTemplate(ctx, rec.Mobile, params); err != nil {
		reqLog.WithField("error", err.Error()).Warn("whatsapp notification failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
