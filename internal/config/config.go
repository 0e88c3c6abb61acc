// Package config provides INI configuration loading for the cronjob family.
//
// Every cronjob reads its configuration from a per-script file under a shared
// directory, conventionally <dir>/<script-base-name>.conf. The file is INI
// formatted; the only section required across all jobs is [SMTPServer], which
// carries the credentials the notifier needs.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/ini.v1"
)

// DefaultDir is the conventional location of per-script cronjob configuration.
const DefaultDir = "/var/lib/tuelib/cronjobs"

// ConfExtension is the extension of per-script configuration files.
const ConfExtension = ".conf"

// SMTPConfig holds the credentials for the notification mail server.
// All three keys must be present in the [SMTPServer] section.
type SMTPConfig struct {
	Address  string `ini:"server_address" validate:"required"`
	User     string `ini:"server_user" validate:"required"`
	Password string `ini:"server_password" validate:"required"`
}

// Config is a loaded per-script configuration file.
type Config struct {
	path string
	file *ini.File
}

// DefaultPath derives the configuration path for a script: the script's base
// name with its extension replaced by ".conf", under dir.
func DefaultPath(dir, scriptPath string) string {
	base := filepath.Base(scriptPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+ConfExtension)
}

// Load reads and parses the INI file at path.
func Load(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("failed to load config file %q", path),
			Cause:   err,
		}
	}
	return &Config{path: path, file: file}, nil
}

// Path returns the path the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Get returns the string value stored under section/key.
func (c *Config) Get(section, key string) (string, error) {
	sec, err := c.file.GetSection(section)
	if err != nil {
		return "", &Error{
			Message: fmt.Sprintf("missing section [%s] in %q", section, c.path),
			Cause:   err,
		}
	}
	k, err := sec.GetKey(key)
	if err != nil {
		return "", &Error{
			Message: fmt.Sprintf("missing key %q in section [%s] of %q", key, section, c.path),
			Cause:   err,
		}
	}
	return k.String(), nil
}

// SMTP extracts and validates the [SMTPServer] section.
func (c *Config) SMTP() (SMTPConfig, error) {
	var smtp SMTPConfig

	sec, err := c.file.GetSection("SMTPServer")
	if err != nil {
		return SMTPConfig{}, &Error{
			Message: fmt.Sprintf("missing section [SMTPServer] in %q", c.path),
			Cause:   err,
		}
	}
	if err := sec.MapTo(&smtp); err != nil {
		return SMTPConfig{}, &Error{
			Message: fmt.Sprintf("failed to map section [SMTPServer] of %q", c.path),
			Cause:   err,
		}
	}

	validate := validator.New()
	if err := validate.Struct(&smtp); err != nil {
		return SMTPConfig{}, &Error{
			Message: fmt.Sprintf("incomplete [SMTPServer] section in %q", c.path),
			Cause:   err,
		}
	}

	return smtp, nil
}

// LoadSMTP is a convenience for the common case of loading a config file just
// for its SMTP credentials.
func LoadSMTP(path string) (SMTPConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return SMTPConfig{}, err
	}
	return cfg.SMTP()
}
