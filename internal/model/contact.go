package model

import "strings"

// ContactSubmission represents one contact form submission. It is created
// per request and discarded once the pipeline completes.
type ContactSubmission struct {
	Name         string
	Email        string
	Message      string
	Phone        string // optional; empty means not provided
	CaptchaToken string
	RemoteIP     string // optional; forwarded to the captcha verifier
}

// PhoneDisplay returns the phone number, or a placeholder when absent.
func (s *ContactSubmission) PhoneDisplay() string {
	if strings.TrimSpace(s.Phone) == "" {
		return "-"
	}
	return s.Phone
}
