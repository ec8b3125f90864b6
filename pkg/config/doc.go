// Package config loads vacuum's layered configuration: embedded defaults,
// then the user config file, then VACUUM_ environment variables, then
// explicit overrides from the command line.
package config
