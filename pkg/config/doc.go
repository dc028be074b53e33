// Package config provides toolchain configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings.
//
// # Configuration Structure
//
// Plugin settings:
//
//	QUILL_PLUGIN_DIRS="/etc/quill/plugins:~/.quill/plugins"
//	QUILL_PLUGIN_CACHE_SIZE="64"
//
// Verifier settings:
//
//	QUILL_VERIFY_MAX_CONCURRENT="4"
//	QUILL_VERIFY_WATCH="false"
//
// Observability settings:
//
//	QUILL_LOG_LEVEL="info"
//	QUILL_METRICS_ENABLED="true"
package config
