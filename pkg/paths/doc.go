// Package paths resolves where cmdmail keeps its files.
//
// Locations follow the XDG Base Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/cmdmail (config.toml, config.yaml or config.yml)
//   - State:  $XDG_STATE_HOME/cmdmail (cmdmail.log)
//
// CMDMAIL_CONFIG_DIR and CMDMAIL_STATE_DIR override either directory. A
// leading ~ in an override is expanded to the home directory.
package paths
