package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	Prompt string `toml:"prompt"`
}

// Commands holds parameters of the built-in line commands.
type Commands struct {
	JumpRow int `toml:"jump-row"`
	JumpCol int `toml:"jump-col"`
}

type LogOptions struct {
	Debug bool   `toml:"debug"`
	File  string `toml:"file"`
}

type Config struct {
	Editor   EditorOptions `toml:"editor"`
	Commands Commands      `toml:"commands"`
	Log      LogOptions    `toml:"log"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			Prompt: "> ",
		},
		Commands: Commands{
			JumpRow: 10,
			JumpCol: 10,
		},
	}
}

// Load reads the config file from ConfigPath. A missing file yields the
// defaults.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path and merges it over the defaults.
// Unset or non-positive values keep their default.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.Prompt != "" {
		cfg.Editor.Prompt = userCfg.Editor.Prompt
	}
	if userCfg.Commands.JumpRow > 0 {
		cfg.Commands.JumpRow = userCfg.Commands.JumpRow
	}
	if userCfg.Commands.JumpCol > 0 {
		cfg.Commands.JumpCol = userCfg.Commands.JumpCol
	}
	if userCfg.Log.Debug {
		cfg.Log.Debug = true
	}
	if userCfg.Log.File != "" {
		cfg.Log.File = userCfg.Log.File
	}
	return cfg, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("RAWLINE_CONFIG_HOME"); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "rawline"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rawline"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
