/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config loads the user configuration of demowin from a YAML file
// in the user scope. Environment variables act as read-only overrides; the
// telemetry token lives in the OS keyring, never on disk.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"demowin/internal/demo"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// Host names accepted by general.host.
const (
	HostFyne     = "fyne"
	HostTUI      = "tui"
	HostHeadless = "headless"
)

type GeneralConfig struct {
	Host    string `yaml:"host"`
	Link    string `yaml:"link"` // deep link applied at startup, "" for none
	Persist bool   `yaml:"persist"`
	Clock   bool   `yaml:"clock"`
}

type StorageConfig struct {
	Dir string `yaml:"dir"` // "" means the default state dir
}

type LinkServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type TelemetryConfig struct {
	OptIn    bool   `yaml:"opt_in"`
	URL      string `yaml:"url"`
	CrashURL string `yaml:"crash_url"`
	// Token is not stored on disk; it lives in the OS keychain.
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the user-editable configuration.
// config_version: bump when the structure changes incompatibly.
type AppConfig struct {
	ConfigVersion int              `yaml:"config_version"`
	General       GeneralConfig    `yaml:"general"`
	Storage       StorageConfig    `yaml:"storage"`
	LinkServer    LinkServerConfig `yaml:"link_server"`
	Telemetry     TelemetryConfig  `yaml:"telemetry"`
	Logging       LoggingConfig    `yaml:"logging"`
}

func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Host: HostFyne, Persist: true, Clock: true},
		LinkServer:    LinkServerConfig{Enabled: false, Addr: "127.0.0.1:7777"},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfig         = "DW_CONFIG"
	EnvHost           = "DW_HOST"
	EnvLink           = "DW_LINK"
	EnvPersist        = "DW_PERSIST"
	EnvStateDir       = "DW_STATE_DIR"
	EnvLinkAddr       = "DW_LINK_ADDR"
	EnvTelemetryOptIn = "DW_TELEMETRY_OPT_IN"
	EnvTelemetryURL   = "DW_TELEMETRY_URL"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "DW_LOG_LEVEL"
	EnvLogFormat = "DW_LOG_FORMAT"
	EnvLogSource = "DW_LOG_SOURCE"
	EnvLogFile   = "DW_LOG_FILE"
)

// Service/keys for OS keyring.
const (
	keyringService = "demowin"
	keyringToken   = "telemetry_token"
)

// tokenStore abstracts the keyring so tests can swap it.
var tokenStore TokenStore = osKeyring{}

type TokenStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// osKeyring implements TokenStore with github.com/zalando/go-keyring.
type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (osKeyring) Set(service, key, value string) error    { return keyring.Set(service, key, value) }
func (osKeyring) Delete(service, key string) error        { return keyring.Delete(service, key) }

// baseDir is the per-user demowin directory holding config and state.
func baseDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "demowin")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "demowin")
	default:
		if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
			base = filepath.Join(x, "demowin")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "demowin")
		}
	}
	if base == "" || base == "demowin" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// ConfigPath returns the config file path, honoring DW_CONFIG.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}
	base, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.yaml"), nil
}

// StateDir resolves where state.json and memory.sqlite live.
func (c AppConfig) StateDir() (string, error) {
	if d := strings.TrimSpace(c.Storage.Dir); d != "" {
		return d, nil
	}
	base, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "state"), nil
}

// Load reads the user config file (if present) over the defaults and
// applies environment overrides. The telemetry token comes from the
// keyring and is returned separately.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		fileCfg := Defaults()
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, "", fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	}
	applyEnvOverrides(&cfg)
	tok, _ := tokenStore.Get(keyringService, keyringToken)
	return cfg, tok, nil
}

// Save writes the YAML file and stores a non-empty token in the keyring.
func Save(cfg AppConfig, token string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if token != "" {
		if err := tokenStore.Set(keyringService, keyringToken, token); err != nil {
			return err
		}
	}
	return nil
}

// DeleteToken removes the telemetry token from the keyring.
func DeleteToken() error {
	err := tokenStore.Delete(keyringService, keyringToken)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// Validate reports the first setting that cannot work.
func (c AppConfig) Validate() error {
	switch c.General.Host {
	case HostFyne, HostTUI, HostHeadless:
	default:
		return fmt.Errorf("general.host: unknown host %q", c.General.Host)
	}
	if _, err := demo.ParseLink(c.General.Link); err != nil {
		return fmt.Errorf("general.link: %w", err)
	}
	if c.LinkServer.Enabled && strings.TrimSpace(c.LinkServer.Addr) == "" {
		return errors.New("link_server.addr: required when the link server is enabled")
	}
	return nil
}

// mergeInto copies the file config over dst, normalizing strings. src
// starts from Defaults, so fields the file does not mention keep them.
func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if h := strings.ToLower(strings.TrimSpace(src.General.Host)); h != "" {
		dst.General.Host = h
	}
	dst.General.Link = strings.TrimSpace(src.General.Link)
	dst.General.Persist = src.General.Persist
	dst.General.Clock = src.General.Clock
	dst.Storage.Dir = strings.TrimSpace(src.Storage.Dir)
	dst.LinkServer.Enabled = src.LinkServer.Enabled
	if a := strings.TrimSpace(src.LinkServer.Addr); a != "" {
		dst.LinkServer.Addr = a
	}
	dst.Telemetry.OptIn = src.Telemetry.OptIn
	dst.Telemetry.URL = strings.TrimSpace(src.Telemetry.URL)
	dst.Telemetry.CrashURL = strings.TrimSpace(src.Telemetry.CrashURL)
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err == nil {
		return b
	}
	lv := strings.ToLower(v)
	return lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvHost)); v != "" {
		cfg.General.Host = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvLink); ok {
		cfg.General.Link = strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvPersist)); v != "" {
		cfg.General.Persist = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvStateDir)); v != "" {
		cfg.Storage.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLinkAddr)); v != "" {
		cfg.LinkServer.Addr = v
		cfg.LinkServer.Enabled = true
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.Telemetry.OptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryURL)); v != "" {
		cfg.Telemetry.URL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envByKey = map[string]string{
	"general.host":     EnvHost,
	"general.link":     EnvLink,
	"general.persist":  EnvPersist,
	"storage.dir":      EnvStateDir,
	"link_server.addr": EnvLinkAddr,
	"telemetry.opt_in": EnvTelemetryOptIn,
	"telemetry.url":    EnvTelemetryURL,
	"logging.level":    EnvLogLevel,
	"logging.format":   EnvLogFormat,
	"logging.source":   EnvLogSource,
	"logging.file":     EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by
// the environment.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := envByKey[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}
