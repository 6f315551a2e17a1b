package ui

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"

	"github.com/AkatukiSora/volley-stats/internal/importer"
	"github.com/AkatukiSora/volley-stats/internal/match"
	"github.com/AkatukiSora/volley-stats/internal/persistence"
)

// userMessage turns domain errors into a sentence for dialogs.
func userMessage(err error) string {
	var verr *match.ValidationError
	var ioErr *persistence.IOError
	var dateErr *dateInputError
	switch {
	case errors.As(err, &verr) && verr.Field == match.FieldDate:
		return lang.X("error.date", "\"{{.Value}}\" is not a date (use YYYY-MM-DD)", map[string]any{"Value": verr.Value})
	case errors.As(err, &verr) && isTextField(verr.Field):
		return lang.X("error.text", "\"{{.Value}}\" contains characters that cannot be saved", map[string]any{"Value": verr.Value})
	case errors.As(err, &verr):
		label := string(verr.Field)
		if def, ok := match.LookupCounter(verr.Field); ok {
			label = def.Label
		}
		return lang.X("error.validation", "{{.Player}}: \"{{.Value}}\" is not a count for {{.Field}}",
			map[string]any{"Player": verr.Player, "Value": verr.Value, "Field": label})
	case errors.As(err, &dateErr):
		return lang.X("error.date", "\"{{.Value}}\" is not a date (use YYYY-MM-DD)", map[string]any{"Value": dateErr.Value})
	case errors.Is(err, persistence.ErrNotFound):
		return lang.X("error.not_found", "That match is no longer saved.")
	case errors.Is(err, persistence.ErrCorruptData):
		return lang.X("error.corrupt", "The saved match could not be read: {{.Error}}", map[string]any{"Error": err})
	case errors.As(err, &ioErr):
		return lang.X("error.io", "Storage error: {{.Error}}", map[string]any{"Error": err})
	case errors.Is(err, importer.ErrNoNameColumn):
		return lang.X("error.no_name_column", "The sheet has no name column (名前).")
	default:
		return err.Error()
	}
}

func isTextField(id match.CounterID) bool {
	switch id {
	case match.FieldName, match.FieldLocation, match.FieldOpponent, match.FieldScore:
		return true
	}
	return false
}

func showError(err error, win fyne.Window) {
	if err == nil || win == nil {
		return
	}
	dialog.ShowError(errors.New(userMessage(err)), win)
}
