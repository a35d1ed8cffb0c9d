// Package config loads and saves the emulator's JSON configuration
// file: window/video presentation, key bindings, and which region the
// core should emulate.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds every user-adjustable setting.
type Config struct {
	Window    WindowConfig    `json:"window"`
	Video     VideoConfig     `json:"video"`
	Input     InputConfig     `json:"input"`
	Emulation EmulationConfig `json:"emulation"`

	path string
}

// WindowConfig controls the render thread's window.
type WindowConfig struct {
	Scale      int  `json:"scale"`
	Fullscreen bool `json:"fullscreen"`
}

// VideoConfig controls presentation filtering.
type VideoConfig struct {
	VSync  bool   `json:"vsync"`
	Filter string `json:"filter"` // "nearest" or "linear"
}

// KeyMapping names the keyboard key bound to each controller button.
type KeyMapping struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// InputConfig holds the key bindings for both controller ports.
type InputConfig struct {
	Player1 KeyMapping `json:"player1"`
	Player2 KeyMapping `json:"player2"`
}

// EmulationConfig controls core behavior independent of any one ROM.
type EmulationConfig struct {
	Region string `json:"region"` // "NTSC" or "PAL"
}

// Default returns the configuration a fresh install starts with.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Scale: 3, Fullscreen: false},
		Video:  VideoConfig{VSync: true, Filter: "nearest"},
		Input: InputConfig{
			Player1: KeyMapping{
				Up: "W", Down: "S", Left: "A", Right: "D",
				A: "J", B: "K", Start: "Enter", Select: "Space",
			},
			Player2: KeyMapping{
				Up: "Up", Down: "Down", Left: "Left", Right: "Right",
				A: "Num1", B: "Num2", Start: "Num3", Select: "Num4",
			},
		},
		Emulation: EmulationConfig{Region: "NTSC"},
	}
}

// DefaultPath returns where the config file lives when the user didn't
// specify one explicitly.
func DefaultPath() string {
	return filepath.Join("config", "gones.json")
}

// Load reads path, writing out the defaults first if the file is
// missing so a fresh checkout always has something to edit.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.path = path
	return cfg, nil
}

// Save writes the configuration to path as indented JSON, creating the
// containing directory if necessary.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	c.path = path
	return nil
}
