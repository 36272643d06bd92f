package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftshop/memberauth/pkg/i18n"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tr, err := i18n.NewTranslator(testTranslations())
	require.NoError(t, err)

	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(i18n.GetLocale(r.Context())))
	})

	tests := []struct {
		name       string
		extractors []i18n.LangExtractor
		target     string
		header     string
		want       string
	}{
		{name: "no header", target: "/", want: "ko"},
		{name: "accept language", target: "/", header: "en-US,en;q=0.9", want: "en"},
		{name: "query wins", extractors: []i18n.LangExtractor{tr.QueryExtractor("lang"), tr.HeaderExtractor()}, target: "/?lang=en", header: "ko", want: "en"},
		{name: "unsupported query ignored", extractors: []i18n.LangExtractor{tr.QueryExtractor("lang"), tr.HeaderExtractor()}, target: "/?lang=fr", header: "en", want: "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			rec := httptest.NewRecorder()

			tr.Middleware(tt.extractors...)(echo).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Body.String())
			assert.Equal(t, tt.want, rec.Header().Get("Content-Language"))
		})
	}
}
