// Package config loads the process configuration (server, storage backend,
// LLM transport limits) from defaults, an optional config file, and SCRY_
// environment variables. It is distinct from the user-editable settings
// document handled by package settings.
package config
