// Package email provides outbound mail delivery for the notification
// dispatcher: an SMTP sender for real deployments and a log-only sender
// for development.
package email

import "context"

// Message is an outbound email. HTML is optional; when set the message is
// sent as multipart/alternative with the text part first.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers messages
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
