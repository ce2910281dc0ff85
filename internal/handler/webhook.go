package handler

import (
	"errors"

	"github.com/iurnickita/swadbot/internal/model"
)

var (
	ErrNoMessage          = errors.New("no message in payload")
	ErrUnsupportedMessage = errors.New("unsupported message type")
)

// JSON уведомление WhatsApp Cloud API

type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []WebhookMessage `json:"messages"`
}

type WebhookMessage struct {
	ID          string              `json:"id"`
	From        string              `json:"from"`
	Timestamp   string              `json:"timestamp"`
	Type        string              `json:"type"`
	Text        *WebhookText        `json:"text,omitempty"`
	Interactive *WebhookInteractive `json:"interactive,omitempty"`
}

type WebhookText struct {
	Body string `json:"body"`
}

type WebhookInteractive struct {
	Type        string        `json:"type"`
	ListReply   *WebhookReply `json:"list_reply,omitempty"`
	ButtonReply *WebhookReply `json:"button_reply,omitempty"`
}

type WebhookReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// FirstMessage returns entry[0].changes[0].value.messages[0].
func (p WebhookPayload) FirstMessage() (WebhookMessage, error) {
	if len(p.Entry) == 0 || len(p.Entry[0].Changes) == 0 {
		return WebhookMessage{}, ErrNoMessage
	}
	messages := p.Entry[0].Changes[0].Value.Messages
	if len(messages) == 0 {
		return WebhookMessage{}, ErrNoMessage
	}
	return messages[0], nil
}

func (m WebhookMessage) Inbound() (model.InboundMessage, error) {
	in := model.InboundMessage{ID: m.ID, From: m.From}

	switch m.Type {
	case "text":
		if m.Text == nil {
			return model.InboundMessage{}, ErrUnsupportedMessage
		}
		in.Kind = model.InboundText
		in.Text = m.Text.Body
	case "interactive":
		if m.Interactive == nil {
			return model.InboundMessage{}, ErrUnsupportedMessage
		}
		var reply *WebhookReply
		switch m.Interactive.Type {
		case "list_reply":
			reply = m.Interactive.ListReply
		case "button_reply":
			reply = m.Interactive.ButtonReply
		}
		if reply == nil {
			return model.InboundMessage{}, ErrUnsupportedMessage
		}
		in.Kind = model.InboundSelection
		in.SelectionID = reply.ID
	default:
		return model.InboundMessage{}, ErrUnsupportedMessage
	}

	return in, nil
}
