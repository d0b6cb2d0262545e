// Package config loads and persists settings.json.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	LanguageRU = "ru"
	LanguageEN = "en"

	ThemeLight = "light"
	ThemeDark  = "dark"

	envPrefix = "GESTRIS"
)

// Resolutions the settings menu cycles through.
var Resolutions = [][2]int{{800, 600}, {1000, 600}, {1280, 720}}

type GameConfig struct {
	Width        int           `mapstructure:"width"`
	Height       int           `mapstructure:"height"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
	Seed         int64         `mapstructure:"seed"`
}

type GestureConfig struct {
	Cooldown time.Duration `mapstructure:"cooldown"`
}

type FilesConfig struct {
	Save       string `mapstructure:"save"`
	Highscores string `mapstructure:"highscores"`
}

type PlayerConfig struct {
	Nickname string `mapstructure:"nickname"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

type TrackerConfig struct {
	Address string `mapstructure:"address"`
}

type HTTPConfig struct {
	Address string `mapstructure:"address"`
}

type SSHConfig struct {
	Address string `mapstructure:"address"`
	HostKey string `mapstructure:"host_key"`
	Binary  string `mapstructure:"binary"`
}

// Settings is everything read from settings.json. The top level keys are the
// ones the settings menu edits.
type Settings struct {
	Language         string `mapstructure:"language"`
	SoundEnabled     bool   `mapstructure:"sound_enabled"`
	Resolution       []int  `mapstructure:"resolution"`
	CustomResolution bool   `mapstructure:"custom_resolution"`
	Theme            string `mapstructure:"theme"`

	Game    GameConfig    `mapstructure:"game"`
	Gesture GestureConfig `mapstructure:"gesture"`
	Files   FilesConfig   `mapstructure:"files"`
	Player  PlayerConfig  `mapstructure:"player"`
	Log     LogConfig     `mapstructure:"log"`
	Tracker TrackerConfig `mapstructure:"tracker"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	SSH     SSHConfig     `mapstructure:"ssh"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("language", LanguageRU)
	v.SetDefault("sound_enabled", true)
	v.SetDefault("resolution", []int{1000, 600})
	v.SetDefault("custom_resolution", false)
	v.SetDefault("theme", ThemeLight)

	v.SetDefault("game.width", 10)
	v.SetDefault("game.height", 20)
	v.SetDefault("game.tick_interval", "500ms")
	v.SetDefault("game.seed", 0)
	v.SetDefault("gesture.cooldown", "100ms")
	v.SetDefault("files.save", "save.bin")
	v.SetDefault("files.highscores", "highscores.txt")
	v.SetDefault("player.nickname", "")
	v.SetDefault("log.path", "./log")
	v.SetDefault("log.level", "info")
	v.SetDefault("tracker.address", "")
	v.SetDefault("http.address", "")
	v.SetDefault("ssh.address", ":2222")
	v.SetDefault("ssh.host_key", "~/.ssh/id_rsa")
	v.SetDefault("ssh.binary", "gestris")
}

// Config owns the viper instance behind settings.json.
type Config struct {
	path   string
	v      *viper.Viper
	logger *zap.Logger

	mu       sync.RWMutex
	settings Settings
}

// Load reads path, writing the defaults there first when the file is missing.
// A file that cannot be parsed is replaced by the defaults.
func Load(path string, logger *zap.Logger) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	c := &Config{path: path, v: v, logger: logger}

	if err := v.ReadInConfig(); err != nil {
		var parseErr viper.ConfigParseError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Info("writing default settings", zap.String("path", path))
			if err := v.SafeWriteConfigAs(path); err != nil {
				return nil, fmt.Errorf("write default settings: %w", err)
			}
		case errors.As(err, &parseErr), isEmpty(path):
			logger.Warn("settings unreadable, restoring defaults", zap.String("path", path), zap.Error(err))
			if err := v.WriteConfigAs(path); err != nil {
				return nil, fmt.Errorf("write default settings: %w", err)
			}
		default:
			return nil, fmt.Errorf("read settings: %w", err)
		}
	}

	if err := c.reload(); err != nil {
		return nil, err
	}

	return c, nil
}

func isEmpty(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() == 0
}

func (c *Config) reload() error {
	var s Settings
	if err := c.v.Unmarshal(&s); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	s.normalize()

	c.mu.Lock()
	c.settings = s
	c.mu.Unlock()

	return nil
}

func (s *Settings) normalize() {
	if s.Language != LanguageRU && s.Language != LanguageEN {
		s.Language = LanguageRU
	}

	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		s.Theme = ThemeLight
	}

	if len(s.Resolution) != 2 || s.Resolution[0] <= 0 || s.Resolution[1] <= 0 {
		s.Resolution = []int{1000, 600}
	}
}

func (c *Config) Path() string { return c.path }

// SetLogger replaces the logger used by Save and Watch. Settings are read
// before the log file is known, so hosts swap it in afterwards.
func (c *Config) SetLogger(logger *zap.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Settings returns a copy of the current settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.settings
	s.Resolution = append([]int(nil), c.settings.Resolution...)
	return s
}

// Save writes the menu editable keys of s to disk.
func (c *Config) Save(s Settings) error {
	s.normalize()

	c.v.Set("language", s.Language)
	c.v.Set("sound_enabled", s.SoundEnabled)
	c.v.Set("resolution", s.Resolution)
	c.v.Set("custom_resolution", s.CustomResolution)
	c.v.Set("theme", s.Theme)

	if err := c.v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	c.logger.Debug("settings saved", zap.String("path", c.path))
	return c.reload()
}

// Watch calls fn with the new settings whenever the file changes on disk.
func (c *Config) Watch(fn func(Settings)) {
	c.v.OnConfigChange(func(e fsnotify.Event) {
		if err := c.reload(); err != nil {
			c.logger.Warn("settings reload failed", zap.String("file", e.Name), zap.Error(err))
			return
		}

		c.logger.Info("settings reloaded", zap.String("file", e.Name), zap.Stringer("op", e.Op))
		fn(c.Settings())
	})
	c.v.WatchConfig()
}

// NextResolution returns the preset after cur, wrapping around. Unknown
// resolutions restart the cycle.
func NextResolution(cur []int) []int {
	idx := -1
	for i, r := range Resolutions {
		if len(cur) == 2 && cur[0] == r[0] && cur[1] == r[1] {
			idx = i
			break
		}
	}

	next := Resolutions[(idx+1)%len(Resolutions)]
	return []int{next[0], next[1]}
}

// ToggleLanguage flips between ru and en.
func (s *Settings) ToggleLanguage() {
	if s.Language == LanguageRU {
		s.Language = LanguageEN
	} else {
		s.Language = LanguageRU
	}
}

func (s *Settings) ToggleTheme() {
	if s.Theme == ThemeLight {
		s.Theme = ThemeDark
	} else {
		s.Theme = ThemeLight
	}
}
