package waclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/iurnickita/swadbot/internal/model"
	"github.com/iurnickita/swadbot/internal/service/config"
)

const (
	messagingProduct = "whatsapp"
	messagesPath     = "/{version}/{phone}/messages"
)

var ErrUnexpectedStatus = errors.New("unexpected gateway status")

// JSON запросы Cloud API

type textPayload struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type textBody struct {
	Body string `json:"body"`
}

type listPayload struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Interactive      interactive `json:"interactive"`
}

type interactive struct {
	Type   string     `json:"type"`
	Body   textField  `json:"body"`
	Action listAction `json:"action"`
}

type textField struct {
	Text string `json:"text"`
}

type listAction struct {
	Button   string        `json:"button"`
	Sections []listSection `json:"sections"`
}

type listSection struct {
	Title string    `json:"title"`
	Rows  []listRow `json:"rows"`
}

type listRow struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Client interface {
	SendText(ctx context.Context, to string, body string) error
	SendList(ctx context.Context, to string, msg model.ListMessage) error
}

type client struct {
	cfg    config.Config
	http   *resty.Client
	zaplog *zap.Logger
}

func NewClient(cfg config.Config, zaplog *zap.Logger) Client {
	httpClient := resty.New().
		SetBaseURL(cfg.APIBase).
		SetAuthToken(cfg.AccessToken).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &client{cfg: cfg, http: httpClient, zaplog: zaplog}
}

func (client *client) SendText(ctx context.Context, to string, body string) error {
	payload := textPayload{
		MessagingProduct: messagingProduct,
		To:               to,
		Type:             "text",
		Text:             textBody{Body: body},
	}
	return client.send(ctx, "text", payload)
}

func (client *client) SendList(ctx context.Context, to string, msg model.ListMessage) error {
	rows := make([]listRow, 0, len(msg.Options))
	for _, opt := range msg.Options {
		rows = append(rows, listRow{ID: opt.ID, Title: opt.Title})
	}

	payload := listPayload{
		MessagingProduct: messagingProduct,
		To:               to,
		Type:             "interactive",
		Interactive: interactive{
			Type: "list",
			Body: textField{Text: msg.Body},
			Action: listAction{
				Button:   msg.Button,
				Sections: []listSection{{Title: msg.SectionTitle, Rows: rows}},
			},
		},
	}
	return client.send(ctx, "list", payload)
}

func (client *client) send(ctx context.Context, kind string, payload interface{}) error {
	resp, err := client.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"version": client.cfg.APIVersion,
			"phone":   client.cfg.PhoneNumberID,
		}).
		SetBody(payload).
		Post(messagesPath)
	if err != nil {
		client.zaplog.Error("gateway request failed", zap.String("kind", kind), zap.Error(err))
		return errors.Wrap(err, "gateway request")
	}

	client.zaplog.Info("message sent",
		zap.String("kind", kind),
		zap.Int("status", resp.StatusCode()),
		zap.String("body", resp.String()))

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return errors.Wrap(ErrUnexpectedStatus, fmt.Sprintf("%d: %s", resp.StatusCode(), resp.String()))
	}
	return nil
}
