package ui

import (
	"embed"
	"log/slog"

	"fyne.io/fyne/v2/lang"
)

// Translation catalogs, one JSON file per locale. English is the fallback.
//
//go:embed translations/*.json
var translationsFS embed.FS

func init() {
	if err := lang.AddTranslationsFS(translationsFS, "translations"); err != nil {
		slog.Error("failed to load translations", "error", err)
		return
	}
	slog.Debug("translations loaded", "locale", lang.SystemLocale().String())
}
