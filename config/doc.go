// Package config loads service configuration from YAML files and
// environment variables.
//
// Resolution order: config.yml (searched in standard locations or given
// explicitly), then the process environment, then a .env file. Later
// sources win. Projects embed ServiceConfig in their own config struct
// and add component sections alongside it.
package config
