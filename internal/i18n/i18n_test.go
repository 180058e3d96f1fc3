package i18n

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
	"golang.org/x/text/language"
)

func TestMessageID(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: entity.ErrInvalidURL, want: MsgInvalidURL},
		{err: fmt.Errorf("op: %w", entity.ErrShortcodeTaken), want: MsgShortcodeTaken},
		{err: &entity.SubmissionError{Index: 1, Err: entity.ErrInvalidValidity}, want: MsgInvalidValidity},
		{err: entity.ErrNotFound, want: MsgNotFound},
		{err: errors.New("unknown"), want: MsgServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, MessageID(tt.err))
		})
	}
}

func TestTranslator(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	assert.ElementsMatch(t, []language.Tag{language.English, language.Russian}, tr.Languages())

	localized := func(acceptLanguage string) context.Context {
		var ctx context.Context

		h := tr.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			ctx = r.Context()
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if acceptLanguage != "" {
			req.Header.Set("Accept-Language", acceptLanguage)
		}
		h.ServeHTTP(httptest.NewRecorder(), req)

		return ctx
	}

	t.Run("default language", func(t *testing.T) {
		assert.Equal(t, "URL not found or expired", tr.Localize(context.Background(), MsgNotFound, nil))
		assert.Equal(t, "URL not found or expired", tr.Localize(localized(""), MsgNotFound, nil))
	})

	t.Run("accept language", func(t *testing.T) {
		ctx := localized("ru-RU,ru;q=0.9,en;q=0.8")

		assert.Equal(t, "Ссылка не найдена или срок её действия истёк", tr.Localize(ctx, MsgNotFound, nil))
	})

	t.Run("unsupported language", func(t *testing.T) {
		ctx := localized("ja-JP")

		assert.Equal(t, "Invalid URL format", tr.Localize(ctx, MsgInvalidURL, nil))
	})

	t.Run("unknown message", func(t *testing.T) {
		assert.Equal(t, "NoSuchMessage", tr.Localize(context.Background(), "NoSuchMessage", nil))
	})

	t.Run("submission error", func(t *testing.T) {
		err := fmt.Errorf("op: %w", &entity.SubmissionError{Index: 1, Err: entity.ErrShortcodeTaken})

		assert.Equal(t,
			"Form 2: Shortcode already exists. Please choose a different one.",
			tr.LocalizeError(context.Background(), err),
		)
	})

	t.Run("batch error", func(t *testing.T) {
		assert.Equal(t,
			"Cannot create more than 5 URLs at once",
			tr.LocalizeError(context.Background(), entity.ErrTooManyRequests),
		)
	})
}
