package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for cmdmail
	EnvConfigDir = "CMDMAIL_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for cmdmail
	EnvStateDir = "CMDMAIL_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under each XDG base
	AppDirName = "cmdmail"

	// ConfigBaseName is the config file name without extension
	ConfigBaseName = "config"

	// LogFileName is the name of the log file
	LogFileName = "cmdmail.log"
)

// ConfigExtensions lists the recognised config file extensions in lookup order.
var ConfigExtensions = []string{".toml", ".yaml", ".yml"}

// Paths holds the resolved directories.
type Paths struct {
	configDir string
	stateDir  string
}

// New resolves directories from the current environment.
func New() *Paths {
	// xdg caches its values at init; reload so later env changes apply
	xdg.Reload()

	p := &Paths{
		configDir: filepath.Join(xdg.ConfigHome, AppDirName),
		stateDir:  filepath.Join(xdg.StateHome, AppDirName),
	}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	}
	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = ExpandHome(dir)
	}
	return p
}

// ConfigDir returns the configuration directory
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns the state directory
func (p *Paths) StateDir() string {
	return p.stateDir
}

// LogFilePath returns the path of the log file
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// DefaultConfigFile is where `config init` writes a new file.
func (p *Paths) DefaultConfigFile() string {
	return filepath.Join(p.configDir, ConfigBaseName+ConfigExtensions[0])
}

// ConfigFile returns the first existing config file in the config directory.
// found is false when there is none, in which case the default path is returned.
func (p *Paths) ConfigFile() (path string, found bool) {
	for _, ext := range ConfigExtensions {
		candidate := filepath.Join(p.configDir, ConfigBaseName+ext)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return p.DefaultConfigFile(), false
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	// ~user is left alone
	return path
}
