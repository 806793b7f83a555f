// Package config loads and validates mqtli's configuration: broker
// connection, logging, topics, run mode, and an optional SQL sink.
//
// Precedence is CLI flags > environment (MQTLI_ prefix) > YAML file >
// built-in defaults, via github.com/spf13/viper. topics[] and sql_storage
// are YAML-only, per spec.md §6.
package config
