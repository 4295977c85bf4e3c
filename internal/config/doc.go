// Package config loads the application configuration from environment
// variables (RECLAMOS_* prefix) layered over an optional config.yaml file.
package config
