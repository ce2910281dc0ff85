package handler

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/iurnickita/swadbot/internal/handler/config"
	"github.com/iurnickita/swadbot/internal/logger"
	"github.com/iurnickita/swadbot/internal/server"
	"github.com/iurnickita/swadbot/internal/service"
)

func Serve(ctx context.Context, cfg config.Config, service service.Service, zaplog *zap.Logger) error {
	h := newHandler(service, cfg.VerifyToken, zaplog)
	router := h.newRouter()

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	return server.ListenAndServe(ctx, srv, zaplog)
}

type handler struct {
	service     service.Service
	verifyToken string
	zaplog      *zap.Logger
}

func newHandler(service service.Service, verifyToken string, zaplog *zap.Logger) *handler {
	return &handler{
		service:     service,
		verifyToken: verifyToken,
		zaplog:      zaplog,
	}
}

func (h *handler) newRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/webhook", logger.RequestLogMdlw(h.Verify, h.zaplog)).Methods(http.MethodGet)
	r.HandleFunc("/webhook", logger.RequestLogMdlw(h.Receive, h.zaplog)).Methods(http.MethodPost)
	return r
}

// Verify отвечает на проверку подписки. Пустой токен в конфигурации не совпадает ни с чем
func (h *handler) Verify(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mode := query.Get("hub.mode")
	token := query.Get("hub.verify_token")
	challenge := query.Get("hub.challenge")

	if mode == "subscribe" && h.verifyToken != "" &&
		subtle.ConstantTimeCompare([]byte(token), []byte(h.verifyToken)) == 1 {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	h.zaplog.Warn("webhook verification failed", zap.String("mode", mode))
	http.Error(w, "Verification failed", http.StatusForbidden)
}

type ReceiveJSONResponse struct {
	Status string `json:"status"`
}

// Receive always acknowledges the delivery; processing errors are only logged.
func (h *handler) Receive(w http.ResponseWriter, r *http.Request) {
	defer h.acknowledge(w)
	defer func() {
		if rec := recover(); rec != nil {
			h.zaplog.Error("panic handling webhook", zap.Any("panic", rec))
		}
	}()

	var payload WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.zaplog.Error("malformed webhook payload", zap.Error(err))
		return
	}

	msg, err := payload.FirstMessage()
	if err != nil {
		// статусы доставки приходят без messages
		h.zaplog.Debug("webhook without message", zap.Error(err))
		return
	}

	in, err := msg.Inbound()
	if err != nil {
		h.zaplog.Warn("webhook message skipped",
			zap.String("type", msg.Type),
			zap.String("from", msg.From),
			zap.Error(err))
		return
	}

	if err = h.service.Handle(r.Context(), in); err != nil {
		h.zaplog.Error("error handling message",
			zap.String("message_id", in.ID),
			zap.String("from", in.From),
			zap.Error(err))
	}
}

func (h *handler) acknowledge(w http.ResponseWriter) {
	responseJSON, err := json.Marshal(ReceiveJSONResponse{Status: "ok"})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(responseJSON)
}
