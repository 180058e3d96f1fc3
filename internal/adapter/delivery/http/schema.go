package http

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"github.com/vadimbarashkov/shortlinks/internal/i18n"
	"github.com/vadimbarashkov/shortlinks/internal/logging"
	"github.com/vadimbarashkov/shortlinks/internal/registry"
)

const statusError = "error"

// submissionRequest is one URL to shorten.
type submissionRequest struct {
	OriginalURL     string   `json:"original_url" validate:"required"`
	ValidityMinutes *float64 `json:"validity_minutes,omitempty"`
	CustomShortcode string   `json:"custom_shortcode,omitempty"`
}

// createURLsRequest is the body of a batch create request.
type createURLsRequest struct {
	URLs []submissionRequest `json:"urls" validate:"required,min=1,dive"`
}

func (req createURLsRequest) toSubmissions() []entity.Submission {
	subs := make([]entity.Submission, 0, len(req.URLs))
	for _, u := range req.URLs {
		subs = append(subs, entity.Submission{
			OriginalURL:     u.OriginalURL,
			ValidityMinutes: u.ValidityMinutes,
			CustomShortcode: u.CustomShortcode,
		})
	}
	return subs
}

type clickResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Location  string    `json:"location"`
	UserAgent string    `json:"user_agent"`
}

// urlResponse is a shortened URL together with its click history.
type urlResponse struct {
	ID          string          `json:"id"`
	ShortCode   string          `json:"short_code"`
	ShortURL    string          `json:"short_url"`
	OriginalURL string          `json:"original_url"`
	CreatedAt   time.Time       `json:"created_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
	ClickCount  int             `json:"click_count"`
	Clicks      []clickResponse `json:"clicks"`
}

func toURLResponse(baseURL string, u entity.URLRecord) urlResponse {
	clicks := make([]clickResponse, 0, len(u.Clicks))
	for _, c := range u.Clicks {
		clicks = append(clicks, clickResponse{
			Timestamp: c.Timestamp,
			Source:    c.Source,
			Location:  c.Location,
			UserAgent: c.UserAgent,
		})
	}

	return urlResponse{
		ID:          u.ID,
		ShortCode:   u.ShortCode,
		ShortURL:    registry.ShortURL(baseURL, u.ShortCode),
		OriginalURL: u.OriginalURL,
		CreatedAt:   u.CreatedAt,
		ExpiresAt:   u.ExpiresAt,
		ClickCount:  len(u.Clicks),
		Clicks:      clicks,
	}
}

func toURLResponses(baseURL string, urls []entity.URLRecord) []urlResponse {
	res := make([]urlResponse, 0, len(urls))
	for _, u := range urls {
		res = append(res, toURLResponse(baseURL, u))
	}
	return res
}

type urlsResponse struct {
	URLs []urlResponse `json:"urls"`
}

type statsResponse struct {
	TotalURLs   int `json:"total_urls"`
	ActiveURLs  int `json:"active_urls"`
	TotalClicks int `json:"total_clicks"`
}

func toStatsResponse(s entity.Stats) statsResponse {
	return statsResponse(s)
}

type logsResponse struct {
	Logs []logging.Entry `json:"logs"`
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Index   *int              `json:"index,omitempty"`
	Errors  []validationError `json:"errors,omitempty"`
}

func newErrorResponse(ctx context.Context, tr *i18n.Translator, id string) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: tr.Localize(ctx, id, nil),
	}
}

// registryErrorResponse builds the body for an error returned by the registry.
func registryErrorResponse(ctx context.Context, tr *i18n.Translator, err error) errorResponse {
	resp := errorResponse{
		Status:  statusError,
		Message: tr.LocalizeError(ctx, err),
	}

	var subErr *entity.SubmissionError
	if errors.As(err, &subErr) {
		idx := subErr.Index
		resp.Index = &idx
	}

	return resp
}

// messageForTag returns the message id for a validation tag.
func messageForTag(tag string) string {
	switch tag {
	case "required":
		return i18n.MsgFieldRequired
	case "min":
		return i18n.MsgAtLeastOneURL
	default:
		return i18n.MsgInvalidValue
	}
}

// validationErrorResponse constructs an errorResponse for validation errors.
func validationErrorResponse(ctx context.Context, tr *i18n.Translator, err error) errorResponse {
	resp := newErrorResponse(ctx, tr, i18n.MsgValidationFailed)

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			resp.Errors = append(resp.Errors, validationError{
				Field:   e.Field(),
				Message: tr.Localize(ctx, messageForTag(e.Tag()), nil),
			})
		}
	}

	return resp
}
