package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/edricd/backend/internal/model"
	"github.com/edricd/backend/internal/service"
)

const maxMessageLength = 5000

// ContactHandler handles the public contact form endpoints.
type ContactHandler struct {
	contactService service.ContactService
	siteKey        string
}

// NewContactHandler creates a ContactHandler with the given service and
// reCAPTCHA site key (possibly empty).
func NewContactHandler(contactService service.ContactService, siteKey string) *ContactHandler {
	return &ContactHandler{contactService: contactService, siteKey: siteKey}
}

// contactRequest is the expected JSON body for POST /api/contact.
type contactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Message      string `json:"message"`
	Phone        string `json:"phone"`
	CaptchaToken string `json:"captcha_token"`
}

// Submit handles POST /api/contact.
// name, email and message are required; phone is optional.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "name, email and message are required"})
		return
	}
	if len([]rune(req.Message)) > maxMessageLength {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "message is too long"})
		return
	}

	sub := &model.ContactSubmission{
		Name:         req.Name,
		Email:        req.Email,
		Message:      req.Message,
		Phone:        req.Phone,
		CaptchaToken: req.CaptchaToken,
		RemoteIP:     clientIP(r),
	}

	if err := h.contactService.Submit(r.Context(), sub); err != nil {
		se := service.AsError(err)
		w.WriteHeader(statusForKind(se.Kind))
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": se.Message})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// statusForKind maps failure kinds to the contact endpoint's status contract:
// client faults get 400, unreachable verification gets 502, everything else 500.
func statusForKind(kind service.Kind) int {
	switch kind {
	case service.KindValidation, service.KindRejected:
		return http.StatusBadRequest
	case service.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RecaptchaSiteKey handles GET /api/recaptcha-sitekey.
func (h *ContactHandler) RecaptchaSiteKey(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"site_key": h.siteKey})
}
