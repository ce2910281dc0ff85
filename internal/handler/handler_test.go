package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/iurnickita/swadbot/internal/model"
)

type mockService struct {
	handled     []model.InboundMessage
	ShouldError bool
	ShouldPanic bool
}

func (m *mockService) Handle(_ context.Context, in model.InboundMessage) error {
	m.handled = append(m.handled, in)
	if m.ShouldPanic {
		panic("boom")
	}
	if m.ShouldError {
		return errors.New("database is locked")
	}
	return nil
}

func newTestRouter(t *testing.T, svc *mockService) http.Handler {
	return newHandler(svc, "s3cret", zaptest.NewLogger(t)).newRouter()
}

func verifyRequest(mode, token, challenge string) *http.Request {
	q := url.Values{}
	q.Set("hub.mode", mode)
	q.Set("hub.verify_token", token)
	q.Set("hub.challenge", challenge)
	return httptest.NewRequest(http.MethodGet, "/webhook?"+q.Encode(), nil)
}

func TestVerify(t *testing.T) {
	router := newTestRouter(t, &mockService{})

	tests := []struct {
		name      string
		mode      string
		token     string
		challenge string
		code      int
		body      string
	}{
		{name: "match", mode: "subscribe", token: "s3cret", challenge: "1158201444", code: http.StatusOK, body: "1158201444"},
		{name: "wrong token", mode: "subscribe", token: "s3cre", challenge: "1158201444", code: http.StatusForbidden},
		{name: "token prefix", mode: "subscribe", token: "s3cret ", challenge: "x", code: http.StatusForbidden},
		{name: "empty token", mode: "subscribe", token: "", challenge: "x", code: http.StatusForbidden},
		{name: "wrong mode", mode: "unsubscribe", token: "s3cret", challenge: "x", code: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, verifyRequest(tt.mode, tt.token, tt.challenge))
			require.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, tt.body, w.Body.String())
			} else {
				assert.NotContains(t, w.Body.String(), tt.challenge)
			}
		})
	}
}

func TestVerifyUnconfiguredToken(t *testing.T) {
	router := newHandler(&mockService{}, "", zaptest.NewLogger(t)).newRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, verifyRequest("subscribe", "", "x"))
	require.Equal(t, http.StatusForbidden, w.Code)
}

const listReplyPayload = `{
  "object": "whatsapp_business_account",
  "entry": [{
    "id": "102290129340398",
    "changes": [{
      "field": "messages",
      "value": {
        "messaging_product": "whatsapp",
        "messages": [{
          "from": "919900000001",
          "id": "wamid.HBgM",
          "timestamp": "1700000000",
          "type": "interactive",
          "interactive": {
            "type": "list_reply",
            "list_reply": {"id": "flavour_onion", "title": "Onion Pickle"}
          }
        }]
      }
    }]
  }]
}`

const textPayload = `{"entry":[{"changes":[{"value":{"messages":[{"from":"919900000001","id":"wamid.1","type":"text","text":{"body":"Hi"}}]}}]}]}`

const statusPayload = `{"entry":[{"changes":[{"value":{"statuses":[{"id":"wamid.1","status":"delivered"}]}}]}]}`

func postWebhook(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	return w
}

func TestReceive(t *testing.T) {
	svc := &mockService{}
	router := newTestRouter(t, svc)

	postWebhook(t, router, listReplyPayload)
	postWebhook(t, router, textPayload)

	require.Equal(t, []model.InboundMessage{
		{ID: "wamid.HBgM", From: "919900000001", Kind: model.InboundSelection, SelectionID: "flavour_onion"},
		{ID: "wamid.1", From: "919900000001", Kind: model.InboundText, Text: "Hi"},
	}, svc.handled)
}

func TestReceiveAlwaysAcknowledges(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		handled int
	}{
		{name: "garbage", body: "not json"},
		{name: "empty object", body: "{}"},
		{name: "no changes", body: `{"entry":[{}]}`},
		{name: "status update", body: statusPayload},
		{name: "image message", body: `{"entry":[{"changes":[{"value":{"messages":[{"from":"1","type":"image"}]}}]}]}`},
		{name: "interactive without reply", body: `{"entry":[{"changes":[{"value":{"messages":[{"from":"1","type":"interactive","interactive":{"type":"nfm_reply"}}]}}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			postWebhook(t, newTestRouter(t, svc), tt.body)
			assert.Len(t, svc.handled, tt.handled)
		})
	}
}

func TestReceiveServiceFailure(t *testing.T) {
	svc := &mockService{ShouldError: true}
	postWebhook(t, newTestRouter(t, svc), textPayload)
	require.Len(t, svc.handled, 1)

	svc = &mockService{ShouldPanic: true}
	postWebhook(t, newTestRouter(t, svc), textPayload)
	require.Len(t, svc.handled, 1)
}

func TestButtonReply(t *testing.T) {
	msg := WebhookMessage{
		From: "1",
		Type: "interactive",
		Interactive: &WebhookInteractive{
			Type:        "button_reply",
			ButtonReply: &WebhookReply{ID: "checkout", Title: "Checkout"},
		},
	}
	in, err := msg.Inbound()
	require.NoError(t, err)
	assert.Equal(t, model.InboundSelection, in.Kind)
	assert.Equal(t, "checkout", in.SelectionID)
}
