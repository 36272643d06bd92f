// Package i18n localizes user-facing messages.
//
// Catalogs are YAML files with language codes at the top level and nested
// keys below them. Keys are addressed with dots, e.g. "auth.wrong_password".
// The bundled catalogs cover Korean (the default) and English.
//
// A Translator negotiates the request language from Accept-Language using
// golang.org/x/text/language and falls back to the default language, then to
// the key itself, when a translation is missing.
//
//	tr, err := i18n.NewDefaultTranslator(ctx)
//	if err != nil {
//		return err
//	}
//	r.Use(tr.Middleware())
//	msg := tr.Tc(r.Context(), "auth.wrong_password")
package i18n
