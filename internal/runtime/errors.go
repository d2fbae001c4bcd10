package runtime

import (
	"os"

	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/logging"
	"github.com/manav03panchal/careeros/internal/output"
)

// FormatError formats an error with its category-specific hint.
func FormatError(err error) string {
	return errs.FormatByCategory(err)
}

// ErrorResponse builds the JSON body reported for err.
func ErrorResponse(err error) output.ErrorResponse {
	return output.ErrorResponse{
		Status:     "error",
		Error:      err.Error(),
		Category:   errs.Classify(err).String(),
		Suggestion: errs.GetSuggestion(err),
	}
}

// ReportError writes err in the active output format: JSON to the formatter's
// writer, text to stderr. A nil context, as when setup itself failed, reports
// through a default formatter.
func ReportError(c *Context, err error) {
	if err == nil {
		return
	}
	logging.DebugLog("command failed", logging.KeyError, err, "category", errs.Classify(err).String())

	f := *output.NewFormatter()
	if c != nil && c.Formatter != nil {
		f = *c.Formatter
	}

	if f.Format == output.FormatJSON {
		_ = output.NewJSONFormatter(&f).PrintError(ErrorResponse(err))
		return
	}
	f.Writer = os.Stderr
	if c != nil && c.Debug {
		f.Print(errs.FormatDebugError(err))
		return
	}
	output.NewCLIFormatter(&f).Error(FormatError(err))
}
