// Package server exposes the construction ledger and projection runs over HTTP.
package server

import (
	"context"
	"crypto/subtle"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/iwvelando/construction-projection/internal/ledger"
	"github.com/iwvelando/construction-projection/internal/projection"
	"github.com/iwvelando/construction-projection/pkg/constants"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pages = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

const invalidPassphrase = "Invalid passphrase"

// Ledger is the store surface the HTTP API reads and edits.
type Ledger interface {
	ListSettings(ctx context.Context) ([]ledger.Setting, error)
	LookupSetting(ctx context.Context, name string) (ledger.Setting, error)
	UpsertSetting(ctx context.Context, setting ledger.Setting) error
	UpdateSetting(ctx context.Context, setting ledger.Setting) error
	DeleteSetting(ctx context.Context, name string) error

	ListStaticRows(ctx context.Context) ([]ledger.StaticRow, error)
	GetStaticRow(ctx context.Context, id int64) (ledger.StaticRow, error)
	CreateStaticRow(ctx context.Context, row ledger.StaticRow) (ledger.StaticRow, error)
	UpdateStaticRow(ctx context.Context, row ledger.StaticRow) error
	DeleteStaticRow(ctx context.Context, id int64) error

	ListSourceEntries(ctx context.Context, filter ledger.SourceFilter) ([]ledger.SourceEntry, error)
	ListRuns(ctx context.Context, limit int) ([]ledger.RunRecord, error)
}

// Runner triggers a projection run.
type Runner interface {
	Run(ctx context.Context) projection.Outcome
}

// Options configures the handler returned by NewHandler.
type Options struct {
	MaxRequestSize int64
	// Passphrase guards projection runs. When empty every run request is rejected.
	Passphrase string
	Version    string
	// Gatherer backs /metrics; prometheus.DefaultGatherer when nil.
	Gatherer prometheus.Gatherer
	// Registerer, when set, receives HTTP request metrics.
	Registerer      prometheus.Registerer
	RunHistoryLimit int
}

type handler struct {
	logger         *zap.Logger
	ledger         Ledger
	runner         Runner
	maxRequestSize int64
	passphrase     string
	version        string
	historyLimit   int
}

// NewHandler constructs the HTTP handler that serves the projection UI and
// ledger API.
func NewHandler(logger *zap.Logger, l Ledger, runner Runner, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = constants.DefaultMaxRequestSizeBytes
	}
	if opts.RunHistoryLimit <= 0 {
		opts.RunHistoryLimit = constants.DefaultRunHistoryLimit
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		ledger:         l,
		runner:         runner,
		maxRequestSize: opts.MaxRequestSize,
		passphrase:     opts.Passphrase,
		version:        trimmedVersion,
		historyLimit:   opts.RunHistoryLimit,
	}

	mux := http.NewServeMux()

	// Projection API
	mux.HandleFunc("POST /api/projection/run", h.handleRun)
	mux.HandleFunc("GET /api/projection/runs", h.handleListRuns)

	// Ledger API
	mux.HandleFunc("GET /api/sources", h.handleListSources)

	mux.HandleFunc("GET /api/settings/{$}", h.handleListSettings)
	mux.HandleFunc("POST /api/settings/{$}", h.handleCreateSetting)
	mux.HandleFunc("GET /api/settings/{name}", h.handleGetSetting)
	mux.HandleFunc("PUT /api/settings/{name}", h.handleUpdateSetting)
	mux.HandleFunc("DELETE /api/settings/{name}", h.handleDeleteSetting)

	mux.HandleFunc("GET /api/static-rows/{$}", h.handleListStaticRows)
	mux.HandleFunc("POST /api/static-rows/{$}", h.handleCreateStaticRow)
	mux.HandleFunc("GET /api/static-rows/{id}", h.handleGetStaticRow)
	mux.HandleFunc("PUT /api/static-rows/{id}", h.handleUpdateStaticRow)
	mux.HandleFunc("DELETE /api/static-rows/{id}", h.handleDeleteStaticRow)

	// Web UI
	mux.HandleFunc("GET /projection", h.handleProjectionPage)
	mux.HandleFunc("POST /projection/run", h.handleProjectionForm)

	// Version endpoint for UI metadata
	mux.HandleFunc("GET /api/version", h.handleVersion)

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	if opts.Registerer == nil {
		return mux
	}
	return instrument(opts.Registerer, mux)
}

func instrument(reg prometheus.Registerer, next http.Handler) http.Handler {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "construction",
		Name:      "http_requests_total",
		Help:      "HTTP requests by status code and method.",
	}, []string{"code", "method"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "construction",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"code", "method"})
	reg.MustRegister(requests, duration)

	return promhttp.InstrumentHandlerCounter(requests,
		promhttp.InstrumentHandlerDuration(duration, next))
}

type runRequest struct {
	Passphrase string `json:"passphrase"`
}

type runResponse struct {
	Status string `json:"status"`
	RunID  string `json:"runId"`
}

func (h *handler) handleRun(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRun"

	req := runRequest{Passphrase: r.URL.Query().Get("passphrase")}
	if req.Passphrase == "" && r.ContentLength != 0 {
		if !h.decodeJSON(w, r, &req, op) {
			return
		}
	}

	if !h.authorized(req.Passphrase) {
		h.respondErrorWithOp(w, http.StatusUnauthorized, invalidPassphrase, op)
		return
	}

	outcome := h.runner.Run(r.Context())
	h.writeJSON(w, http.StatusOK, runResponse{Status: outcome.String(), RunID: outcome.RunID})
}

func (h *handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := h.historyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw), "server.handleListRuns")
			return
		}
		limit = n
	}

	runs, err := h.ledger.ListRuns(r.Context(), limit)
	if err != nil {
		h.respondStoreError(w, err, "server.handleListRuns")
		return
	}
	if runs == nil {
		runs = []ledger.RunRecord{}
	}
	h.writeJSON(w, http.StatusOK, runs)
}

func (h *handler) handleListSources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := h.ledger.ListSourceEntries(r.Context(), ledger.SourceFilter{
		FlowSource: q.Get("flow_source"),
		Resource:   q.Get("resource"),
		FiscalYear: q.Get("fiscal_year"),
	})
	if err != nil {
		h.respondStoreError(w, err, "server.handleListSources")
		return
	}
	if entries == nil {
		entries = []ledger.SourceEntry{}
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

type resultView struct {
	Status string
	Error  bool
}

func (h *handler) handleProjectionPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "projection.html", map[string]string{"Version": h.version})
}

func (h *handler) handleProjectionForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	if err := r.ParseForm(); err != nil {
		h.respondBodyError(w, err, "server.handleProjectionForm")
		return
	}

	if !h.authorized(r.PostForm.Get("passphrase")) {
		h.logger.Warn("projection run rejected",
			zap.String("op", "server.handleProjectionForm"),
			zap.String("remote", r.RemoteAddr),
		)
		h.render(w, http.StatusOK, "result.html", resultView{Status: invalidPassphrase, Error: true})
		return
	}

	outcome := h.runner.Run(r.Context())
	h.render(w, http.StatusOK, "result.html", resultView{Status: outcome.String(), Error: !outcome.OK()})
}

func (h *handler) authorized(given string) bool {
	if h.passphrase == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(h.passphrase)) == 1
}

func (h *handler) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render template",
			zap.String("template", name),
			zap.Error(err),
		)
	}
}

// decodeJSON reads a size-capped JSON body into dst. It writes the error
// response and returns false when the body is unusable.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.respondBodyError(w, err, op)
		return false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		h.respondErrorWithOp(w, http.StatusBadRequest, "request body must contain a single JSON object", op)
		return false
	}
	return true
}

func (h *handler) respondBodyError(w http.ResponseWriter, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), op)
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, ledger.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
