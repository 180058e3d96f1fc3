// Package i18n localizes the messages returned to API clients.
package i18n

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"golang.org/x/text/language"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
)

// Message identifiers.
const (
	MsgInvalidURL         = "InvalidURL"
	MsgInvalidShortcode   = "InvalidShortcode"
	MsgShortcodeTaken     = "ShortcodeTaken"
	MsgInvalidValidity    = "InvalidValidity"
	MsgTooManyRequests    = "TooManyRequests"
	MsgNotFound           = "NotFound"
	MsgSubmissionFailed   = "SubmissionFailed"
	MsgAtLeastOneURL      = "AtLeastOneURL"
	MsgFieldRequired      = "FieldRequired"
	MsgInvalidValue       = "InvalidValue"
	MsgEmptyRequestBody   = "EmptyRequestBody"
	MsgInvalidRequestBody = "InvalidRequestBody"
	MsgValidationFailed   = "ValidationFailed"
	MsgServerError        = "ServerError"
)

//go:embed locales/*.toml
var locales embed.FS

var errorMessages = []struct {
	err error
	id  string
}{
	{entity.ErrInvalidURL, MsgInvalidURL},
	{entity.ErrInvalidShortcode, MsgInvalidShortcode},
	{entity.ErrShortcodeTaken, MsgShortcodeTaken},
	{entity.ErrInvalidValidity, MsgInvalidValidity},
	{entity.ErrTooManyRequests, MsgTooManyRequests},
	{entity.ErrNotFound, MsgNotFound},
}

// MessageID returns the message identifier for one of the entity error kinds,
// or MsgServerError for anything else.
func MessageID(err error) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.id
		}
	}
	return MsgServerError
}

type ctxKey struct{}

type Translator struct {
	bundle   *goi18n.Bundle
	tags     []language.Tag
	matcher  language.Matcher
	fallback *goi18n.Localizer
}

// New loads the embedded catalogs. English is the default language.
func New() (*Translator, error) {
	const op = "i18n.New"

	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list message files: %w", op, err)
	}

	for _, f := range files {
		data, err := locales.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read message file %s: %w", op, f, err)
		}

		if _, err := bundle.ParseMessageFileBytes(data, path.Base(f)); err != nil {
			return nil, fmt.Errorf("%s: failed to parse message file %s: %w", op, f, err)
		}
	}

	tags := bundle.LanguageTags()

	return &Translator{
		bundle:   bundle,
		tags:     tags,
		matcher:  language.NewMatcher(tags),
		fallback: goi18n.NewLocalizer(bundle, language.English.String()),
	}, nil
}

// Languages returns the languages with a loaded catalog.
func (t *Translator) Languages() []language.Tag {
	return t.tags
}

// Middleware picks the language from the Accept-Language header and stores a
// localizer in the request context.
func (t *Translator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		localizer := t.localizerFor(r.Header.Get("Accept-Language"))
		ctx := context.WithValue(r.Context(), ctxKey{}, localizer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (t *Translator) localizerFor(acceptLanguage string) *goi18n.Localizer {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.fallback
	}

	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return t.fallback
	}

	return goi18n.NewLocalizer(t.bundle, t.tags[idx].String())
}

// Localize renders the message id in the language chosen for ctx. Unknown ids
// are returned unchanged.
func (t *Translator) Localize(ctx context.Context, id string, data map[string]any) string {
	localizer, ok := ctx.Value(ctxKey{}).(*goi18n.Localizer)
	if !ok {
		localizer = t.fallback
	}

	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}

	return msg
}

// LocalizeError renders the message for one of the entity error kinds. A
// rejected batch submission is prefixed with its one-based form number.
func (t *Translator) LocalizeError(ctx context.Context, err error) string {
	msg := t.Localize(ctx, MessageID(err), nil)

	var subErr *entity.SubmissionError
	if errors.As(err, &subErr) {
		return t.Localize(ctx, MsgSubmissionFailed, map[string]any{
			"Index":   subErr.Index + 1,
			"Message": msg,
		})
	}

	return msg
}
