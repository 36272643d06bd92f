package i18n

import "net/http"

// LangExtractor returns the language for a request, or "" if it has no opinion.
type LangExtractor func(r *http.Request) string

// QueryExtractor reads the language from query parameter name. Unsupported values are ignored.
func (t *Translator) QueryExtractor(name string) LangExtractor {
	return func(r *http.Request) string {
		lang := r.URL.Query().Get(name)
		if _, ok := t.translations[lang]; !ok {
			return ""
		}
		return lang
	}
}

// HeaderExtractor negotiates against the Accept-Language header.
func (t *Translator) HeaderExtractor() LangExtractor {
	return func(r *http.Request) string {
		if h := r.Header.Get("Accept-Language"); h != "" {
			return t.Match(h)
		}
		return ""
	}
}

// Middleware stores the request language in the context. Extractors are
// tried in order; with none given the Accept-Language header is used.
func (t *Translator) Middleware(extractors ...LangExtractor) func(http.Handler) http.Handler {
	if len(extractors) == 0 {
		extractors = []LangExtractor{t.HeaderExtractor()}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := t.defaultLang
			for _, extract := range extractors {
				if l := extract(r); l != "" {
					lang = l
					break
				}
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
