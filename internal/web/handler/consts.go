// Package handler holds shared scaffolding for the web handler packages.
package handler

const (
	// RootPath is the root path of a route group.
	RootPath = "/"

	// APIPrefix is the common prefix for all JSON API routes.
	APIPrefix = "/api/v1"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
