// Package config loads service configuration from file and environment.
package config
