// Package logger re-exports the shared goLogger module so internal packages
// keep a stable import path.
package logger

import (
	pkglogger "github.com/Bparsons0904/goLogger"
)

type (
	Logger = pkglogger.Logger
	Config = pkglogger.Config
	Format = pkglogger.Format
)

const (
	DefaultTraceIDKey = pkglogger.DefaultTraceIDKey
	FormatJSON        = pkglogger.FormatJSON
	FormatText        = pkglogger.FormatText
)

var (
	New                    = pkglogger.New
	NewWithConfig          = pkglogger.NewWithConfig
	ContextWithTraceID     = pkglogger.ContextWithTraceID
	ContextWithTraceIDName = pkglogger.ContextWithTraceIDName
	TraceIDFromContext     = pkglogger.TraceIDFromContext
	TraceIDFromContextName = pkglogger.TraceIDFromContextName
)
