// Package logger provides centralized logging for the application.
// File: logger/logger.go
package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// ------------------- global loggers -------------------

// four logger levels accessible throughout the application
var (
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger
	Debug *log.Logger
)

// ------------------- logger initialization -------------------

// InitLogger (re)configures the four loggers to write to w.
func InitLogger(w io.Writer) {
	Info = log.New(w, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	Warn = log.New(w, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	Error = log.New(w, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	Debug = log.New(w, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// InitFileLogger creates a timestamped log file in dir and writes to it.
// When alsoStdout is set, output goes to both stdout and the file.
// The returned closer releases the file.
func InitFileLogger(dir string, alsoStdout bool) (io.Closer, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	logFileName := filepath.Join(dir, time.Now().Format("2006-01-02_15-04-05")+".log")
	file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec
	if err != nil {
		return nil, err
	}

	var w io.Writer = file
	if alsoStdout {
		w = io.MultiWriter(os.Stdout, file)
	}
	InitLogger(w)
	return file, nil
}

// SetLogLevel discards Debug output in production.
func SetLogLevel(env string) {
	if env == "production" {
		Debug.SetOutput(io.Discard)
	}
}

// init wires stdout logging so the loggers are usable before configuration is loaded.
func init() {
	InitLogger(os.Stdout)
}
