// Package mail composes and delivers contact form emails.
package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"

	"github.com/edricd/backend/internal/model"
)

// recipient is the fixed operator destination for contact form mail.
const recipient = "contact@edricd.com"

const subjectPrefix = "[edricd.com] New Contact Form - "

// Composer builds contact emails. It owns the optional HTML template; any
// template problem degrades to a text-only message instead of failing the
// submission.
type Composer struct {
	from string
	tmpl *template.Template
}

// NewComposer creates a Composer sending from the given address.
// templateDir should contain contact.html; when the template is missing or
// broken the composer logs a warning and renders text-only mail.
func NewComposer(from, templateDir string) *Composer {
	c := &Composer{from: from}
	tmpl, err := template.ParseFiles(filepath.Join(templateDir, "contact.html"))
	if err != nil {
		slog.Warn("contact html template unavailable, sending text-only mail", "error", err)
		return c
	}
	c.tmpl = tmpl
	return c
}

// templateData carries the four displayable submission fields.
type templateData struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Compose builds the dual-format message for a submission. It cannot fail:
// an HTML rendering error drops the HTML part only.
func (c *Composer) Compose(sub *model.ContactSubmission) Message {
	phone := sub.PhoneDisplay()
	msg := Message{
		Subject:  subjectPrefix + sub.Name,
		TextBody: fmt.Sprintf("name: %s\nemail: %s\nphone: %s\nmessage:\n%s\n", sub.Name, sub.Email, phone, sub.Message),
		From:     c.from,
		To:       recipient,
		ReplyTo:  sub.Email,
	}

	if c.tmpl != nil {
		var buf bytes.Buffer
		data := templateData{Name: sub.Name, Email: sub.Email, Phone: phone, Message: sub.Message}
		if err := c.tmpl.Execute(&buf, data); err != nil {
			slog.Warn("contact html render failed, sending text-only mail", "error", err)
		} else {
			msg.HTMLBody = buf.String()
		}
	}
	return msg
}
