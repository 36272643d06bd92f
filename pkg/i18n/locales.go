package i18n

import (
	"context"
	"embed"
)

//go:embed locales/*.yaml
var Locales embed.FS

// LocalesDir is the directory of Locales holding the bundled catalogs.
const LocalesDir = "locales"

// NewDefaultTranslator loads the bundled ko and en catalogs.
func NewDefaultTranslator(ctx context.Context, opts ...Option) (*Translator, error) {
	translations, err := LoadFS(ctx, Locales, LocalesDir)
	if err != nil {
		return nil, err
	}
	return NewTranslator(translations, opts...)
}
