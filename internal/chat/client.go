// Package chat holds the AI gateway: it formats chat-completion requests
// with the pet's persona and bounded conversation history, and enforces the
// history discipline around successes and failures.
package chat

import (
	"context"
	"errors"
)

// Validation and credential errors. Anything else returned by the gateway
// is a transport failure: logged, surfaced as a generic localized string,
// and never remembered in history.
var (
	ErrEmptyMessage   = errors.New("chat: empty message")
	ErrMessageTooLong = errors.New("chat: message too long")
	ErrNoCredential   = errors.New("chat: no API key configured")
)

// Message is one chat-completion turn. Content is either a plain string or
// a []Part for multimodal turns.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// Part is one piece of a multimodal message.
type Part struct {
	Type     string    `json:"type"` // "text" or "image_url"
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries an image as a data URL.
type ImageURL struct {
	URL string `json:"url"`
}

// TextMessage builds a plain text turn.
func TextMessage(role, text string) Message {
	return Message{Role: role, Content: text}
}

// ImageMessage builds a multimodal turn from text plus a base64 PNG.
func ImageMessage(role, text, pngBase64 string) Message {
	return Message{Role: role, Content: []Part{
		{Type: "text", Text: text},
		{Type: "image_url", ImageURL: &ImageURL{URL: "data:image/png;base64," + pngBase64}},
	}}
}

// Client is the interface to the chat-completion collaborator.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
