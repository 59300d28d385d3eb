package testutil

import (
	"io"

	"github.com/dtroode/countries-api/internal/logger"
)

// MakeNoopLogger returns a logger that discards everything.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithFormat(0, "text", io.Discard)
}
