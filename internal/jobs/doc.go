// Package jobs contains background processors started alongside the HTTP
// server. Each job runs on its own ticker and is stopped via Stop()
// during graceful shutdown.
package jobs
