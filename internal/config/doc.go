// Package config loads Campfield configuration from environment variables.
//
// Load() applies defaults suitable for local development; Validate()
// reports every problem at once via errors.Join. Production hardening
// (secure cookies) is enforced when SERVER_ENV=production.
package config
