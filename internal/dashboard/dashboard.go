package dashboard

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/iurnickita/swadbot/internal/auth"
	"github.com/iurnickita/swadbot/internal/dashboard/config"
	"github.com/iurnickita/swadbot/internal/logger"
	"github.com/iurnickita/swadbot/internal/model"
	"github.com/iurnickita/swadbot/internal/server"
	"github.com/iurnickita/swadbot/internal/store"
)

//go:embed templates/orders.html
var templates embed.FS

var ordersTemplate = template.Must(
	template.New("orders.html").
		Funcs(template.FuncMap{"flavourTitle": model.FlavourTitle}).
		ParseFS(templates, "templates/orders.html"))

func Serve(ctx context.Context, cfg config.Config, store store.Store, auth auth.Auth, zaplog *zap.Logger) error {
	d := newDashboard(store, auth, zaplog)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: d.newRouter(),
	}

	return server.ListenAndServe(ctx, srv, zaplog)
}

type dashboard struct {
	store  store.Store
	auth   auth.Auth
	zaplog *zap.Logger
}

func newDashboard(store store.Store, auth auth.Auth, zaplog *zap.Logger) *dashboard {
	return &dashboard{
		store:  store,
		auth:   auth,
		zaplog: zaplog,
	}
}

func (d *dashboard) newRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", logger.RequestLogMdlw(d.auth.Middleware(d.Index), d.zaplog)).Methods(http.MethodGet)
	r.HandleFunc("/api/summary", logger.RequestLogMdlw(d.auth.Middleware(d.GetSummary), d.zaplog)).Methods(http.MethodGet)
	return r
}

type indexPage struct {
	Summary Summary
	Orders  []model.Order
}

func (d *dashboard) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := d.store.OrdersGet(r.Context())
	if err != nil {
		d.zaplog.Error("load orders", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// рендер в буфер, чтобы не отдать половину страницы при ошибке
	var buf bytes.Buffer
	err = ordersTemplate.Execute(&buf, indexPage{Summary: Summarize(orders), Orders: orders})
	if err != nil {
		d.zaplog.Error("render orders", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (d *dashboard) GetSummary(w http.ResponseWriter, r *http.Request) {
	orders, err := d.store.OrdersGet(r.Context())
	if err != nil {
		d.zaplog.Error("load orders", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	responseJSON, err := json.Marshal(Summarize(orders))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(responseJSON)
}
