package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"github.com/vadimbarashkov/shortlinks/internal/i18n"
	"github.com/vadimbarashkov/shortlinks/internal/logging"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

type urlRegistry interface {
	CreateBatch(ctx context.Context, subs []entity.Submission) ([]entity.URLRecord, error)
	Resolve(ctx context.Context, shortCode string, visit entity.Visit) (string, error)
	Get(ctx context.Context, shortCode string) (entity.URLRecord, error)
	List(ctx context.Context) []entity.URLRecord
	ListActive(ctx context.Context) []entity.URLRecord
	Stats(ctx context.Context) entity.Stats
	Delete(ctx context.Context, id string)
}

type logBuffer interface {
	Entries() []logging.Entry
	Clear()
}

type urlHandler struct {
	registry urlRegistry
	tr       *i18n.Translator
	validate *validator.Validate
	baseURL  string
}

func newURLHandler(registry urlRegistry, tr *i18n.Translator, validate *validator.Validate, baseURL string) *urlHandler {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &urlHandler{
		registry: registry,
		tr:       tr,
		validate: validate,
		baseURL:  baseURL,
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidURL),
		errors.Is(err, entity.ErrInvalidShortcode),
		errors.Is(err, entity.ErrInvalidValidity),
		errors.Is(err, entity.ErrTooManyRequests):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrShortcodeTaken):
		return http.StatusConflict
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *urlHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))
	}

	render.Status(r, status)
	render.JSON(w, r, registryErrorResponse(r.Context(), h.tr, err))
}

func (h *urlHandler) createURLs(w http.ResponseWriter, r *http.Request) {
	var req createURLsRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, newErrorResponse(r.Context(), h.tr, i18n.MsgEmptyRequestBody))
			return
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, newErrorResponse(r.Context(), h.tr, i18n.MsgInvalidRequestBody))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(r.Context(), h.tr, err))
		return
	}

	urls, err := h.registry.CreateBatch(r.Context(), req.toSubmissions())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, urlsResponse{URLs: toURLResponses(h.baseURL, urls)})
}

func (h *urlHandler) listURLs(w http.ResponseWriter, r *http.Request) {
	var urls []entity.URLRecord

	if r.URL.Query().Get("active") == "true" {
		urls = h.registry.ListActive(r.Context())
	} else {
		urls = h.registry.List(r.Context())
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, urlsResponse{URLs: toURLResponses(h.baseURL, urls)})
}

func (h *urlHandler) getURL(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "key")

	u, err := h.registry.Get(r.Context(), shortCode)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLResponse(h.baseURL, u))
}

func (h *urlHandler) deleteURL(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "key")

	h.registry.Delete(r.Context(), id)

	w.WriteHeader(http.StatusNoContent)
}

func (h *urlHandler) getStats(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, toStatsResponse(h.registry.Stats(r.Context())))
}

// redirect resolves the short code, records the click and sends the client
// to the original URL.
func (h *urlHandler) redirect(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	originalURL, err := h.registry.Resolve(r.Context(), shortCode, entity.Visit{
		Source:    referrerHost(r.Referer()),
		UserAgent: r.UserAgent(),
		IP:        clientIP(r.RemoteAddr),
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, originalURL, http.StatusFound)
}

// referrerHost returns the hostname of the referring page, or an empty string
// for direct visits.
func referrerHost(referer string) string {
	if referer == "" {
		return ""
	}

	u, err := url.Parse(referer)
	if err != nil {
		return ""
	}

	return u.Hostname()
}

// clientIP strips the port from a remote address. middleware.RealIP leaves a
// bare address, the listener leaves host:port.
func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

type logHandler struct {
	logs logBuffer
}

func newLogHandler(logs logBuffer) *logHandler {
	return &logHandler{logs: logs}
}

func (h *logHandler) getLogs(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, logsResponse{Logs: h.logs.Entries()})
}

func (h *logHandler) clearLogs(w http.ResponseWriter, r *http.Request) {
	h.logs.Clear()

	w.WriteHeader(http.StatusNoContent)
}
