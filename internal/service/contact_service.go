package service

import (
	"context"

	"github.com/edricd/backend/internal/model"
)

// ContactService runs the contact submission pipeline: captcha verification,
// email composition, SMTP delivery.
type ContactService interface {
	// Submit processes one submission. A nil return means the mail was
	// sent; otherwise the error is a *Error carrying the failure kind.
	// The pipeline is strictly sequential and short-circuits on first
	// failure, so a rejected captcha never reaches the mail transport.
	Submit(ctx context.Context, sub *model.ContactSubmission) error
}
