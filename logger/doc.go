// Package logger provides structured logging for picoview using zerolog.
//
// It supports JSON and console output, level configuration, component-scoped
// loggers and map-based structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("rest")
//	log.Debug("round-trip complete", logger.Fields("status", 200))
package logger
