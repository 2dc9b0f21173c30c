package logger

import (
	"log/slog"
	"os"
)

// New returns the application logger. JSON output so log pipelines can index
// request_id and property_id fields.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}
