// Package config loads the demo's tunables from a TOML file, replacing
// main.go's interactive fmt.Scan prompts (algorithm choice, core count,
// tile division) with a declarative file read once at startup, in the
// idiom github.com/pelletier/go-toml/v2 gives the rest of this codebase.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config mirrors polygon_core.go's scattered package vars (width, height,
// fov, cores, tileSizeX/Y, cameraPosition) as one structured, file-driven
// value.
type Config struct {
	Screen struct {
		Width  int `toml:"width"`
		Height int `toml:"height"`
	} `toml:"screen"`

	Camera struct {
		FOV  float32 `toml:"fov"`
		Near float32 `toml:"near"`
		Far  float32 `toml:"far"`
	} `toml:"camera"`

	Workers struct {
		// Count defaults to runtime.NumCPU() when zero, same as
		// polygon_core.go's `cores = runtime.NumCPU()` fallback.
		Count               int `toml:"count"`
		MaxTilesPerTriangle int `toml:"max_tiles_per_triangle"`
	} `toml:"workers"`

	Stencil struct {
		TileSize int `toml:"tile_size"`
	} `toml:"stencil"`

	Model struct {
		Path    string `toml:"path"`
		Texture string `toml:"texture"`
	} `toml:"model"`
}

// Default returns polygon_core.go's own hardcoded constants (width/height
// 320x180, fov 165, near/far .1/100) as a starting Config.
func Default() Config {
	var c Config
	c.Screen.Width, c.Screen.Height = 320, 180
	c.Camera.FOV = 165
	c.Camera.Near, c.Camera.Far = .1, 100
	c.Workers.MaxTilesPerTriangle = 64
	c.Stencil.TileSize = 8
	return c
}

// Load reads and parses a TOML config file, filling in any field left at
// its zero value from Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}
