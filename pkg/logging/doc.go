// Package logging provides structured logging configuration for soapmock.
//
// This package wraps log/slog so that every component logs the same way.
// It supports configurable log levels and output formats, and can tee
// records into a JSON log file.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("container started", "name", "mock-billing", "port", 9090)
//	logger.Error("docker run failed", "error", err)
//
// # Integration
//
// Components accept a *slog.Logger in their constructor or via an option.
// If no logger is provided, they use logging.Nop().
package logging
