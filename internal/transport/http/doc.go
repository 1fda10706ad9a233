// Package http exposes the computed results over a small read-only JSON
// API. The server never recomputes anything; it serves whatever result set
// it was given at startup, table by table or whole.
package http
