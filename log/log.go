package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLog    *log.Logger
	WarningLog *log.Logger
	ErrorLog   *log.Logger

	logFilePath string
	logFile     io.WriteCloser
)

// Config holds logging configuration.
type Config struct {
	Enabled  bool
	Dir      string // empty means ~/.githd/logs
	MaxSize  int    // megabytes per file
	MaxFiles int
	MaxAge   int // days
	Compress bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:  true,
		MaxSize:  10,
		MaxFiles: 3,
		MaxAge:   30,
		Compress: true,
	}
}

// Dir returns the directory where logs are written.
func Dir(cfg *Config) (string, error) {
	if cfg != nil && !cfg.Enabled {
		return os.TempDir(), nil
	}
	if cfg != nil && cfg.Dir != "" {
		return cfg.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir(), fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".githd", "logs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return os.TempDir(), fmt.Errorf("failed to create log directory: %w", err)
	}
	return dir, nil
}

// FilePath returns the full path to the log file.
func FilePath(cfg *Config) (string, error) {
	dir, err := Dir(cfg)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "githd.log"), nil
}

func init() {
	// Stderr defaults so log calls never panic under `go test`.
	InfoLog = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime)
	WarningLog = log.New(os.Stderr, "WARNING: ", log.Ldate|log.Ltime)
	ErrorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
}

// Initialize should be called once at the beginning of the program to set up
// logging; defer Close() after calling it.
func Initialize(cfg *Config) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	path, err := FilePath(cfg)
	if err != nil {
		fmt.Printf("Warning: using temp log file location: %v\n", err)
		path = filepath.Join(os.TempDir(), "githd.log")
	}

	writer := newRotatingWriter(path, cfg)
	InfoLog = log.New(writer, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(writer, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(writer, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	if closer, ok := writer.(io.WriteCloser); ok {
		logFile = closer
	}
	logFilePath = path
}

func newRotatingWriter(path string, cfg *Config) io.Writer {
	if cfg.MaxSize <= 0 {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			panic(fmt.Sprintf("could not create log directory: %s", err))
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			panic(fmt.Sprintf("could not open log file: %s", err))
		}
		return f
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxFiles,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
}

// Close flushes and closes the log file.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
	}
}
