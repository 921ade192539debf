// Package logger configures the process wide logrus logger
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	FilePath   string `mapstructure:"filePath"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAgeDays"`
	Compress   bool   `mapstructure:"compress"`
	// Console keeps writing to stdout when FilePath is set
	Console bool `mapstructure:"console"`
}

const timestampFormat = "2006-01-02 15:04:05"

func Formatter(format string) logrus.Formatter {
	if strings.ToLower(format) == "json" {
		return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
	return &logrus.TextFormatter{
		TimestampFormat: timestampFormat,
		FullTimestamp:   true,
	}
}

// Output returns the writer the configuration asks for
func Output(cfg *Config) (io.Writer, error) {
	if cfg.FilePath == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	if cfg.Console {
		return io.MultiWriter(os.Stdout, file), nil
	}
	return file, nil
}

// Init applies cfg to the standard logrus logger
func Init(cfg *Config) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %s, %w", cfg.Level, err)
	}
	out, err := Output(cfg)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(Formatter(cfg.Format))
	logrus.SetOutput(out)
	return nil
}
