// Package config loads editor configuration from layered sources:
// built-in defaults, then an optional TOML or YAML file, then
// TEXTFORGE_* environment variables. Later layers win. A missing
// config file is not an error; a malformed one is.
//
// Watch re-reads the file when it changes on disk and delivers the
// freshly loaded Config to a callback, debouncing rapid writes.
package config
