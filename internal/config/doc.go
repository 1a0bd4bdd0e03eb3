// Package config loads the importer settings from an optional config.yaml
// and CLINIC_* environment variables, then validates them.
package config
