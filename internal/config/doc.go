// Package config loads and merges lgtm configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (LGTM_PROVIDER, LGTM_MODEL, LGTM_BASE_BRANCH, etc.)
//  3. Config file ($XDG_CONFIG_HOME/lgtm/config.yaml)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged and validated [Config], [Save] to write one
// back, and [SetField] to update a single key.
package config
