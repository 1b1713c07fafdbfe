// Package pricex provides a client for a price extraction service.
// It collects product URLs, submits them to an extraction backend,
// reports progress, renders per-URL results, and exports them as CSV.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, sqlite/, slog/).
package pricex
