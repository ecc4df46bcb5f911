package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bholdus-chain/dex/api"
	"github.com/bholdus-chain/dex/app"
)

const (
	envPrefix      = "DEXD"
	configFileName = "dexd.toml"

	flagHome = "home"
)

// Config is the daemon configuration file, <home>/config/dexd.toml.
type Config struct {
	App            app.Config
	API            api.Config
	Telemetry      TelemetryConfig
	MetricsAddress string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig(home string) Config {
	return Config{
		App:            app.DefaultConfig(home),
		API:            *api.DefaultConfig(),
		Telemetry:      DefaultTelemetryConfig(),
		MetricsAddress: "127.0.0.1:26660",
	}
}

// ConfigPath returns where the config file lives under home.
func ConfigPath(home string) string {
	return filepath.Join(home, "config", configFileName)
}

// newViper layers defaults, the config file, DEXD_ environment variables and
// the command's flags, in increasing precedence.
func newViper(home string, flags *pflag.FlagSet) (*viper.Viper, error) {
	def := DefaultConfig(home)

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(ConfigPath(home))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db.backend", def.App.DBBackend)
	v.SetDefault("db.dir", def.App.DBDir)
	v.SetDefault("log.level", def.App.LogLevel)
	v.SetDefault("log.format", def.App.LogFormat)
	v.SetDefault("genesis.file", def.App.GenesisFile)
	v.SetDefault("dex.authorities", []string{})
	v.SetDefault("api.address", def.API.Address)
	v.SetDefault("api.cors_origins", def.API.CORSOrigins)
	v.SetDefault("api.rate_limit_rps", def.API.RateLimitRPS)
	v.SetDefault("api.read_timeout", def.API.ReadTimeout)
	v.SetDefault("api.write_timeout", def.API.WriteTimeout)
	v.SetDefault("api.request_timeout", def.API.RequestTimeout)
	v.SetDefault("api.shutdown_timeout", def.API.ShutdownTimeout)
	v.SetDefault("api.jwt_secret", def.API.JWTSecret)
	v.SetDefault("telemetry.enabled", def.Telemetry.Enabled)
	v.SetDefault("telemetry.otlp_endpoint", def.Telemetry.OTLPEndpoint)
	v.SetDefault("telemetry.sample_rate", def.Telemetry.SampleRate)
	v.SetDefault("metrics.address", def.MetricsAddress)

	// A missing config file leaves the defaults in place.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s: %w", ConfigPath(home), err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if f.Name == flagHome || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(f.Name, f)
		})
		if bindErr != nil {
			return nil, bindErr
		}
	}
	return v, nil
}

// LoadConfig reads the configuration seen by cmd.
func LoadConfig(cmd *cobra.Command) (Config, error) {
	home, err := cmd.Flags().GetString(flagHome)
	if err != nil {
		return Config{}, err
	}
	v, err := newViper(home, cmd.Flags())
	if err != nil {
		return Config{}, err
	}
	return configFromViper(v), nil
}

func configFromViper(v *viper.Viper) Config {
	return Config{
		App: app.Config{
			DBBackend:   v.GetString("db.backend"),
			DBDir:       v.GetString("db.dir"),
			LogLevel:    v.GetString("log.level"),
			LogFormat:   v.GetString("log.format"),
			GenesisFile: v.GetString("genesis.file"),
			Authorities: stringList(v.Get("dex.authorities")),
		},
		API: api.Config{
			Address:         v.GetString("api.address"),
			CORSOrigins:     stringList(v.Get("api.cors_origins")),
			RateLimitRPS:    v.GetInt("api.rate_limit_rps"),
			ReadTimeout:     v.GetDuration("api.read_timeout"),
			WriteTimeout:    v.GetDuration("api.write_timeout"),
			RequestTimeout:  v.GetDuration("api.request_timeout"),
			ShutdownTimeout: v.GetDuration("api.shutdown_timeout"),
			JWTSecret:       v.GetString("api.jwt_secret"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      v.GetBool("telemetry.enabled"),
			OTLPEndpoint: v.GetString("telemetry.otlp_endpoint"),
			SampleRate:   v.GetFloat64("telemetry.sample_rate"),
		},
		MetricsAddress: v.GetString("metrics.address"),
	}
}

// stringList accepts a TOML array or a comma separated string, the form
// lists take in environment variables.
func stringList(raw any) []string {
	if s, ok := raw.(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return cast.ToStringSlice(raw)
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if c.API.Address == "" {
		return fmt.Errorf("api.address is required")
	}
	if c.API.RateLimitRPS < 0 {
		return fmt.Errorf("api.rate_limit_rps must not be negative")
	}
	return c.Telemetry.Validate()
}

var configTemplate = template.Must(template.New("config").Parse(`# dexd configuration

[db]
# memdb or goleveldb
backend = "{{ .App.DBBackend }}"
dir = "{{ .App.DBDir }}"

[log]
# trace, debug, info, warn or error
level = "{{ .App.LogLevel }}"
# plain or json
format = "{{ .App.LogFormat }}"

[genesis]
file = "{{ .App.GenesisFile }}"

[dex]
# Accounts allowed to list trading pairs and change module parameters.
authorities = [{{ range $i, $a := .App.Authorities }}{{ if $i }}, {{ end }}"{{ $a }}"{{ end }}]

[api]
address = "{{ .API.Address }}"
cors_origins = [{{ range $i, $o := .API.CORSOrigins }}{{ if $i }}, {{ end }}"{{ $o }}"{{ end }}]
rate_limit_rps = {{ .API.RateLimitRPS }}
read_timeout = "{{ .API.ReadTimeout }}"
write_timeout = "{{ .API.WriteTimeout }}"
request_timeout = "{{ .API.RequestTimeout }}"
shutdown_timeout = "{{ .API.ShutdownTimeout }}"
# When set, state changing routes require a bearer token issued by
# "dexd token" and the request sender must match it.
jwt_secret = "{{ .API.JWTSecret }}"

[telemetry]
# Export request traces over OTLP/HTTP.
enabled = {{ .Telemetry.Enabled }}
otlp_endpoint = "{{ .Telemetry.OTLPEndpoint }}"
sample_rate = {{ printf "%g" .Telemetry.SampleRate }}

[metrics]
address = "{{ .MetricsAddress }}"
`))

// WriteConfigFile renders c to path.
func WriteConfigFile(path string, c Config) error {
	var buf bytes.Buffer
	if err := configTemplate.Execute(&buf, c); err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}
