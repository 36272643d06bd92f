package i18n

import "errors"

var (
	ErrLoadingCancelled    = errors.New("loading translations cancelled")
	ErrFailedToReadCatalog = errors.New("failed to read translation catalog")
	ErrFailedToParseYAML   = errors.New("failed to parse YAML content")
	ErrInvalidCatalog      = errors.New("invalid translation catalog")
	ErrNoTranslations      = errors.New("no translations loaded")
	ErrDefaultLangMissing  = errors.New("default language has no translations")
	ErrInvalidLanguageTag  = errors.New("language code is not a valid BCP 47 tag")
)
