package testutil

import (
	"io"

	"github.com/jobsift/jobsift-server/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}
