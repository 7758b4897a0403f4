package notify

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/samber/lo"

	"portfolio-api/internal/model"
)

// Email is a rendered contact notification.
type Email struct {
	Subject string
	HTML    string
	Text    string
}

var htmlBody = htmltemplate.Must(htmltemplate.New("contact.html").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; border-bottom: 2px solid #4CAF50; padding-bottom: 10px;">New Contact Form Submission</h2>
  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <p style="margin: 10px 0;"><strong style="color: #555;">Name:</strong> <span style="color: #333;">{{.Name}}</span></p>
    <p style="margin: 10px 0;"><strong style="color: #555;">Email:</strong> <a href="mailto:{{.Email}}" style="color: #4CAF50;">{{.Email}}</a></p>
    {{- if .Subject}}
    <p style="margin: 10px 0;"><strong style="color: #555;">Subject:</strong> <span style="color: #333;">{{.Subject}}</span></p>
    {{- end}}
  </div>
  <div style="background-color: #fff; padding: 20px; border-left: 4px solid #4CAF50; margin: 20px 0;">
    <h3 style="color: #333; margin-top: 0;">Message:</h3>
    <p style="color: #555; line-height: 1.6; white-space: pre-wrap;">{{.Message}}</p>
  </div>
  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd; color: #888; font-size: 12px;">
    <p>This email was sent from your portfolio website contact form.</p>
    <p>Timestamp: {{.Timestamp}}</p>
  </div>
</div>
`))

var textBody = texttemplate.Must(texttemplate.New("contact.txt").Parse(`New Contact Form Submission

Name: {{.Name}}
Email: {{.Email}}
{{- if .Subject}}
Subject: {{.Subject}}
{{- end}}

Message:
{{.Message}}

---
Timestamp: {{.Timestamp}}
`))

type view struct {
	Name, Email, Subject, Message string
	Timestamp                     string
}

// Render builds the notification for c. at is the time shown in the body.
func Render(c *model.Contact, at time.Time) (*Email, error) {
	v := view{
		Name:      c.Name,
		Email:     c.Email,
		Subject:   c.Subject,
		Message:   c.Message,
		Timestamp: at.Format(time.RFC1123),
	}
	var html, text strings.Builder
	if err := htmlBody.Execute(&html, v); err != nil {
		return nil, err
	}
	if err := textBody.Execute(&text, v); err != nil {
		return nil, err
	}
	return &Email{
		Subject: "Portfolio Contact: " + lo.Ternary(c.Subject != "", c.Subject, "New Message"),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
