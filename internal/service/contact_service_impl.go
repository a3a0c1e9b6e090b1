package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/edricd/backend/internal/captcha"
	"github.com/edricd/backend/internal/mail"
	"github.com/edricd/backend/internal/model"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	verifier captcha.Verifier
	composer *mail.Composer
	sender   mail.Sender
}

// NewContactService creates a ContactService with the given collaborators.
func NewContactService(verifier captcha.Verifier, composer *mail.Composer, sender mail.Sender) ContactService {
	return &contactServiceImpl{verifier: verifier, composer: composer, sender: sender}
}

// Submit verifies the captcha token, composes the email and delivers it.
func (s *contactServiceImpl) Submit(ctx context.Context, sub *model.ContactSubmission) error {
	if strings.TrimSpace(sub.CaptchaToken) == "" {
		return newError(KindValidation, "captcha token is required", nil)
	}

	result, err := s.verifier.Verify(ctx, sub.CaptchaToken, sub.RemoteIP)
	switch result {
	case captcha.Accepted:
		// continue
	case captcha.NotConfigured:
		slog.Error("captcha secret not configured")
		return newError(KindConfiguration, "contact form is not configured", nil)
	case captcha.UpstreamUnavailable:
		slog.Error("captcha verification unavailable", "error", err)
		return newError(KindUpstream, "captcha verification is temporarily unavailable", err)
	default:
		return newError(KindRejected, "captcha verification failed", nil)
	}

	msg := s.composer.Compose(sub)

	if err := s.sender.Send(msg); err != nil {
		if errors.Is(err, mail.ErrNotConfigured) {
			slog.Error("smtp not configured, cannot deliver contact mail")
			return newError(KindConfiguration, "contact form is not configured", err)
		}
		slog.Error("contact mail delivery failed", "error", err)
		return newError(KindDelivery, "failed to send message", err)
	}

	slog.Info("contact mail sent", "name", sub.Name, "html", msg.HTMLBody != "")
	return nil
}
