// Package logging provides categorized file-based debug logging for
// lyriclens subsystems. Logs are written under <state dir>/logs with one
// file per category per day. When debug mode is off every call is a no-op,
// so callers never guard their log statements.
package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category identifies a subsystem log stream.
type Category string

const (
	CategoryBoot      Category = "boot"      // startup, config load
	CategoryPipeline  Category = "pipeline"  // analysis orchestration
	CategoryProvider  Category = "provider"  // capability provider calls
	CategoryScoring   Category = "scoring"   // aggregation breakdowns
	CategoryMerge     Category = "merge"     // chunk merge decisions
	CategoryScripture Category = "scripture" // reference resolution
	CategoryStore     Category = "store"     // result persistence
	CategoryBatch     Category = "batch"     // worker pool lifecycle
)

// Log levels.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Options controls logger behavior for the whole process.
type Options struct {
	Dir        string // directory for log files
	Debug      bool   // master switch; false disables all file logging
	Level      string // debug/info/warn/error
	JSONFormat bool   // structured JSON entries instead of text
}

// Logger writes to one category's file.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	opts      Options
	optsMu    sync.RWMutex
	logLevel  int
)

// Initialize sets up the logging directory. Call once at startup; with
// Debug false it is a silent no-op and no files are created.
func Initialize(o Options) error {
	optsMu.Lock()
	opts = o
	switch o.Level {
	case "debug":
		logLevel = LevelDebug
	case "warn", "warning":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		logLevel = LevelInfo
	}
	optsMu.Unlock()

	if !o.Debug {
		return nil
	}
	if o.Dir == "" {
		return fmt.Errorf("log directory required in debug mode")
	}
	if err := os.MkdirAll(o.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	Get(CategoryBoot).Info("logging initialized: dir=%s level=%s json=%v", o.Dir, o.Level, o.JSONFormat)
	return nil
}

// Reset disables logging and drops open files. Intended for tests.
func Reset() {
	CloseAll()
	optsMu.Lock()
	opts = Options{}
	logLevel = LevelInfo
	optsMu.Unlock()
}

func enabled() bool {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts.Debug && opts.Dir != ""
}

// Get returns (or lazily creates) the logger for a category. Returns a
// no-op logger when debug mode is off or the file cannot be opened.
func Get(category Category) *Logger {
	if !enabled() {
		return &Logger{category: category}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()
	// Double-check after acquiring the write lock.
	if l, ok := loggers[category]; ok {
		return l
	}

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(opts.Dir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] could not open %s: %v\n", path, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

type jsonEntry struct {
	Timestamp int64          `json:"ts"`
	Category  string         `json:"cat"`
	Level     string         `json:"lvl"`
	Message   string         `json:"msg"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func (l *Logger) write(level int, name, format string, args ...any) {
	if l.logger == nil || logLevel > level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	optsMu.RLock()
	jsonFmt := opts.JSONFormat
	optsMu.RUnlock()
	if jsonFmt {
		data, err := json.Marshal(jsonEntry{
			Timestamp: time.Now().UnixMilli(),
			Category:  string(l.category),
			Level:     name,
			Message:   msg,
		})
		if err == nil {
			l.logger.Printf("%s", data)
			return
		}
	}
	l.logger.Printf("[%s] %s", name, msg)
}

// Debug logs at debug level.
func (l *Logger) Debug(format string, args ...any) { l.write(LevelDebug, "DEBUG", format, args...) }

// Info logs at info level.
func (l *Logger) Info(format string, args ...any) { l.write(LevelInfo, "INFO", format, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...any) { l.write(LevelWarn, "WARN", format, args...) }

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) { l.write(LevelError, "ERROR", format, args...) }

// CloseAll closes all open log files. Call at shutdown.
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// Convenience helpers for the hot categories.

// Pipeline logs to the pipeline category at info level.
func Pipeline(format string, args ...any) { Get(CategoryPipeline).Info(format, args...) }

// PipelineDebug logs to the pipeline category at debug level.
func PipelineDebug(format string, args ...any) { Get(CategoryPipeline).Debug(format, args...) }

// Provider logs to the provider category at info level.
func Provider(format string, args ...any) { Get(CategoryProvider).Info(format, args...) }

// ProviderWarn logs to the provider category at warn level.
func ProviderWarn(format string, args ...any) { Get(CategoryProvider).Warn(format, args...) }

// Scoring logs to the scoring category at debug level.
func Scoring(format string, args ...any) { Get(CategoryScoring).Debug(format, args...) }

// MergeDebug logs to the merge category at debug level.
func MergeDebug(format string, args ...any) { Get(CategoryMerge).Debug(format, args...) }

// Scripture logs to the scripture category at debug level.
func Scripture(format string, args ...any) { Get(CategoryScripture).Debug(format, args...) }

// Store logs to the store category at debug level.
func Store(format string, args ...any) { Get(CategoryStore).Debug(format, args...) }

// Batch logs to the batch category at info level.
func Batch(format string, args ...any) { Get(CategoryBatch).Info(format, args...) }

// Timer measures an operation's duration and logs it on Stop.
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation.
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the elapsed time at debug level.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}
