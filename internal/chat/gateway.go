package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/pondside/duckpet/internal/capture"
	"github.com/pondside/duckpet/internal/config"
	"github.com/pondside/duckpet/internal/locale"
	"github.com/pondside/duckpet/internal/store"
)

// MaxMessageLen bounds user chat input, matching what the input field in
// the UI allows.
const MaxMessageLen = 50

// Gateway owns the conversation: it validates input, assembles the persona
// plus bounded history into requests, and appends completed exchanges back
// to the store. Failed exchanges are never remembered.
type Gateway struct {
	db      *store.DB
	capture capture.Provider
	envKey  string // config override for the persisted API key

	// newClient builds the transport for a given key. Tests swap this out.
	newClient func(apiKey string) Client
}

// NewGateway creates a Gateway over the given store and capture provider.
// cap may be nil when visual context is disabled.
func NewGateway(db *store.DB, cfg config.AIConfig, cap capture.Provider) *Gateway {
	return &Gateway{
		db:      db,
		capture: cap,
		envKey:  cfg.APIKey,
		newClient: func(apiKey string) Client {
			return NewOpenAI(apiKey, cfg.Model, cfg.MaxTokens, cfg.Timeout)
		},
	}
}

// NewTestGateway creates a Gateway that routes every request through the
// given client regardless of the configured model or key. For tests.
func NewTestGateway(db *store.DB, cfg config.AIConfig, c Client) *Gateway {
	g := NewGateway(db, cfg, nil)
	g.newClient = func(string) Client { return c }
	return g
}

/// apiKey resolves the credential: environment override first, then the
// persisted setting.
func (g *Gateway) apiKey() string {
	if g.envKey != "" {
		return g.envKey
	}
	key, err := g.db.GetString(store.KeyAPIKey, "")
	if err != nil {
		log.Printf("chat: read api key: %v", err)
	}
	return key
}

// HasCredential reports whether an API key is available. The scheduler
// checks this before bothering to fire an auto-comment.
func (g *Gateway) HasCredential() bool {
	return g.apiKey() != ""
}

// SendMessage validates the user's text, sends it with persona and history,
// and on success appends both turns to the store. On transport failure it
// returns a generic localized failure string alongside the error, and the
// history is left untouched.
func (g *Gateway) SendMessage(ctx context.Context, text string, attachContext bool) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > MaxMessageLen {
		return "", ErrMessageTooLong
	}

	key := g.apiKey()
	if key == "" {
		return "", ErrNoCredential
	}

	lang, name := g.identity()
	userTurn := TextMessage("user", text)
	if attachContext {
		if img := g.captureImage(); img != "" {
			userTurn = ImageMessage("user", text, img)
		}
	}

	reply, err := g.complete(ctx, key, lang, name, userTurn)
	if err != nil {
		return locale.T(lang, locale.ChatFailed), err
	}

	if err := g.db.AppendConversation(
		store.Entry{Role: "user", Content: text},
		store.Entry{Role: "assistant", Content: reply},
	); err != nil {
		log.Printf("chat: persist history: %v", err)
	}
	return reply, nil
}

// AutoComment asks the pet to remark on its surroundings unprompted. The
// exchange is not recorded in history, so scheduled chatter never crowds
// out the user's own conversation window.
func (g *Gateway) AutoComment(ctx context.Context) (string, error) {
	key := g.apiKey()
	if key == "" {
		return "", ErrNoCredential
	}

	lang, name := g.identity()
	prompt := locale.ObservePrompt(lang)
	turn := TextMessage("user", prompt)
	if img := g.captureImage(); img != "" {
		turn = ImageMessage("user", prompt, img)
	}

	return g.complete(ctx, key, lang, name, turn)
}

// complete assembles persona + stored history + the new turn and calls the
// collaborator.
func (g *Gateway) complete(ctx context.Context, key, lang, name string, turn Message) (string, error) {
	history, err := g.db.Conversation()
	if err != nil {
		log.Printf("chat: load history: %v", err)
		history = nil
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, TextMessage("system", locale.Persona(lang, name)))
	for _, e := range history {
		messages = append(messages, TextMessage(e.Role, e.Content))
	}
	messages = append(messages, turn)

	reply, err := g.newClient(key).Complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	return reply, nil
}

func (g *Gateway) identity() (lang, name string) {
	lang, _ = g.db.GetString(store.KeyLanguage, "en")
	name, _ = g.db.GetString(store.KeyDuckName, "")
	return lang, name
}

func (g *Gateway) captureImage() string {
	if g.capture == nil {
		return ""
	}
	img, err := g.capture.Capture()
	if err != nil {
		log.Printf("chat: capture: %v", err)
		return ""
	}
	return img
}

// History returns the stored conversation in order.
func (g *Gateway) History() ([]store.Entry, error) {
	return g.db.Conversation()
}

// HistoryLength returns the number of stored turns.
func (g *Gateway) HistoryLength() (int, error) {
	return g.db.ConversationLength()
}

// ClearHistory wipes the stored conversation.
func (g *Gateway) ClearHistory() error {
	return g.db.ClearConversation()
}
