// Package config handles configuration management for cmdmail.
//
// Configuration is layered with koanf: the embedded defaults, then the user
// file (TOML or YAML, chosen by extension), then CMDMAIL_* environment
// variables. String values are run through the interp package once at load
// time with $HOSTNAME and the [variables] table available.
package config
