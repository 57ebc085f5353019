package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/cmdmail/pkg/errors"
	"github.com/arthur-debert/cmdmail/pkg/interp"
	"github.com/arthur-debert/cmdmail/pkg/logging"
	"github.com/arthur-debert/cmdmail/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "CMDMAIL_"

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions controls Load.
type LoadOptions struct {
	// Path is an explicit config file. It must exist when set.
	Path string
	// Paths locates the default config file when Path is empty.
	Paths *paths.Paths
	// Env is the fallback for $NAME references. Defaults to the process environment.
	Env interp.Environment
	// Hostname defaults to os.Hostname.
	Hostname func() (string, error)
	// Overrides are dotted keys ("message.to", "output.max_lines") that win
	// over every other source.
	Overrides map[string]interface{}
}

// Load reads defaults, the config file, the environment and overrides, then expands
// $NAME references in string values.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	path, err := resolveConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment variables: CMDMAIL_SMTP_HOST -> smtp.host,
	// CMDMAIL_MESSAGE_ATTACH_OUTPUT -> message.attach_output
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 6. Expand $NAME references
	hostname := opts.Hostname
	if hostname == nil {
		hostname = os.Hostname
	}
	host, err := hostname()
	if err != nil {
		logger.Warn().Err(err).Msg("Could not determine hostname")
	}
	envProvider := opts.Env
	if envProvider == nil {
		envProvider = interp.OSEnvironment{}
	}
	cfg.expand(interp.Expander{Env: envProvider}, host)

	logger.Debug().
		Str("smtp", cfg.SMTP.Host).
		Strs("to", cfg.Message.To).
		Int("max_lines", cfg.Output.MaxLines).
		Int("keep_lines", cfg.Output.KeepLines).
		Msg("Configuration loaded")

	return &cfg, nil
}

// LoadTable returns the table used for load-time expansion. Completion-time
// expansion starts from it too.
func (c *Config) LoadTable(hostname string) *interp.Table {
	table := interp.NewTable().Set("HOSTNAME", hostname)
	for name, value := range c.Variables {
		table.Set(name, value)
	}
	return table
}

func (c *Config) expand(e interp.Expander, hostname string) {
	base := interp.NewTable().Set("HOSTNAME", hostname)
	for name, value := range c.Variables {
		c.Variables[name] = e.Expand(value, base)
	}
	table := c.LoadTable(hostname)

	c.SMTP.Host = e.Expand(c.SMTP.Host, table)
	c.SMTP.Username = e.Expand(c.SMTP.Username, table)
	c.Message.From = e.Expand(c.Message.From, table)
	c.Message.Subject = e.Expand(c.Message.Subject, table)
	for i, to := range c.Message.To {
		c.Message.To[i] = e.Expand(to, table)
	}
}

func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.Path != "" {
		path := paths.ExpandHome(opts.Path)
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s is not readable", path)
		}
		return path, nil
	}

	p := opts.Paths
	if p == nil {
		p = paths.New()
	}
	if path, found := p.ConfigFile(); found {
		return path, nil
	}
	return "", nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config file type %q", filepath.Ext(path))
	}
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}
