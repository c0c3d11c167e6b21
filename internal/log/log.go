// Package log is the process-wide structured logger.
//
// Records fan out to stderr (text or JSON, level chosen by verbosity) and,
// when a debug directory is configured, to a daily JSONL file that always
// captures every level. Attributes that carry secret material are masked
// before any handler sees them.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

var (
	logger     *slog.Logger
	base       slog.Handler
	fileWriter *FileWriter
)

// Options configures the logger.
type Options struct {
	// Verbosity raises the stderr level: 0 shows warnings, 1 adds info,
	// 2 and above add debug.
	Verbosity int
	// Quiet limits stderr to errors. It overrides Verbosity.
	Quiet bool
	// JSONFormat uses JSON output format for stderr.
	JSONFormat bool
	// DebugDir is the directory for debug log files. If empty, file logging is disabled.
	DebugDir string
	// RetentionDays is how many days to keep log files (0 = no cleanup).
	RetentionDays int
	// Stderr is the writer for stderr output (defaults to os.Stderr).
	Stderr io.Writer
}

func (o Options) stderrLevel() slog.Level {
	switch {
	case o.Quiet:
		return slog.LevelError
	case o.Verbosity >= 2:
		return slog.LevelDebug
	case o.Verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// Init initializes the global logger with the given options.
func Init(opts Options) error {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var handlers []slog.Handler

	stderrOpts := &slog.HandlerOptions{
		Level:       opts.stderrLevel(),
		ReplaceAttr: redactAttr,
	}
	if opts.JSONFormat {
		handlers = append(handlers, slog.NewJSONHandler(stderr, stderrOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(stderr, stderrOpts))
	}

	// File handler: always all levels, always JSON
	Close()
	if opts.DebugDir != "" {
		if opts.RetentionDays > 0 {
			Cleanup(opts.DebugDir, opts.RetentionDays)
		}

		fw, err := NewFileWriter(opts.DebugDir)
		if err != nil {
			return err
		}
		fileWriter = fw

		handlers = append(handlers, slog.NewJSONHandler(fileWriter, &slog.HandlerOptions{
			Level:       slog.LevelDebug,
			ReplaceAttr: redactAttr,
		}))
	}

	setHandler(&multiHandler{handlers: handlers})
	return nil
}

// Close closes the file writer if one was created.
func Close() {
	if fileWriter != nil {
		fileWriter.Close()
		fileWriter = nil
	}
}

func setHandler(h slog.Handler) {
	base = h
	logger = slog.New(h)
	slog.SetDefault(logger)
}

// multiHandler fans out log records to multiple handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// With returns a logger with additional context.
func With(args ...any) *slog.Logger {
	return logger.With(args...)
}

// SetOutput sends all levels to w as text (for testing).
func SetOutput(w io.Writer) {
	setHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       slog.LevelDebug,
		ReplaceAttr: redactAttr,
	}))
}

// SetFlowID tags all subsequent records with flow_id so one auth flow can
// be followed through the debug log.
func SetFlowID(id string) {
	logger = slog.New(base.WithAttrs([]slog.Attr{slog.String("flow_id", id)}))
	slog.SetDefault(logger)
}

// ClearFlowID removes the flow_id attribute from subsequent records.
func ClearFlowID() {
	logger = slog.New(base)
	slog.SetDefault(logger)
}

func init() {
	// Default logger until Init is called
	base = slog.Default().Handler()
	logger = slog.Default()
}
