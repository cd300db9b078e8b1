package email

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in the template input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

const welcomeTemplate = `# Welcome to the blood bank network

Hi **%s**,

Your hospital **%s** has been registered and your administrator account is ready.

Sign in with your username to:

- register donors and recipients
- record donations
- raise and resolve blood requests

If you did not request this registration, reply to this email.
`

// WelcomeMailer renders and sends the post-registration confirmation email.
type WelcomeMailer struct {
	sender Sender
}

// NewWelcomeMailer creates a WelcomeMailer on top of any Sender.
func NewWelcomeMailer(sender Sender) *WelcomeMailer {
	return &WelcomeMailer{sender: sender}
}

// SendRegistrationConfirmation renders the welcome markdown to HTML and
// sends it to the new administrator.
// PRE: to is a syntactically valid email address
// POST: The confirmation is queued with the provider
func (m *WelcomeMailer) SendRegistrationConfirmation(ctx context.Context, to, hospitalName, username string) error {
	md := fmt.Sprintf(welcomeTemplate, username, hospitalName)

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return fmt.Errorf("render welcome email: %w", err)
	}

	_, err := m.sender.Send(ctx, SendRequest{
		To:      []string{to},
		Subject: fmt.Sprintf("Welcome aboard, %s", hospitalName),
		HTML:    buf.String(),
	})
	return err
}
