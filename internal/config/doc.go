// Package config loads hooksctl settings from the environment.
//
// Every setting is read from a HOOKS_* variable. Variables may also come
// from .env files, which never override variables already set:
//
//	HOOKS_BASE_URL=https://api.example.com
//	HOOKS_AUTH_SCHEME=Bearer
//	HOOKS_AUTH_TOKEN=secret
//	HOOKS_TIMEOUT=10s
//	HOOKS_LOG_LEVEL=debug
//	HOOKS_LOG_FORMAT=json
//	HOOKS_LISTEN_ADDR=:8080
//	HOOKS_METRICS_NAMESPACE=hooks
//
// Load returns a validated Config; invalid values are reported as E020.
package config
