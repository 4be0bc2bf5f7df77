// Package logging configures the serverconfig log sink.
// Every user-facing status line also lands in a timestamped log file under the
// configured log directory; when the file can't be created we degrade to
// console-only logging rather than failing the run.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger with dual console/file output and
// returns the log file path ("" when file logging is unavailable).
func Setup(logDir string, verbose bool) string {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	writers := []io.Writer{consoleWriter}

	logPath := runLogPath(logDir)
	file, err := openLogFile(logPath)
	if err != nil {
		logPath = ""
	} else {
		writers = append(writers, file)
	}

	multi := io.MultiWriter(writers...)
	log.Logger = zerolog.New(multi).With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()

	if err != nil {
		log.Warn().Err(err).Str("dir", logDir).Msg("log file unavailable, console only")
	}

	return logPath
}

// GetLogger returns a logger tagged with a component name.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// runLogPath builds the per-run log file path: <dir>/serverconfig-<timestamp>.log.
func runLogPath(logDir string) string {
	timestamp := time.Now().Format("20060102-150405")
	return filepath.Join(logDir, fmt.Sprintf("serverconfig-%s.log", timestamp))
}

// openLogFile creates the log directory and opens the run's log file.
func openLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}
