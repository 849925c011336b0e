// Package config loads the viewer configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-map/engine/marker"
)

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Controls ControlsConfig `yaml:"controls"`
	Camera   CameraConfig   `yaml:"camera"`
	Marker   MarkerConfig   `yaml:"marker"`
	Engine   EngineConfig   `yaml:"engine"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// ControlsConfig tunes drag rotation. MouseDrag lets mouse drags rotate the view,
// which touch-first hosts leave off.
type ControlsConfig struct {
	Speed     float64 `yaml:"speed"`
	Stiffness float64 `yaml:"stiffness"`
	Threshold float64 `yaml:"threshold"`
	MouseDrag bool    `yaml:"mouse_drag"`
}

type CameraConfig struct {
	Distance  float64 `yaml:"distance"`
	Rotation  float64 `yaml:"rotation"`
	Angle     float64 `yaml:"angle"`
	Fov       float64 `yaml:"fov"`
	PanSpeed  float64 `yaml:"pan_speed"`
	ZoomSpeed float64 `yaml:"zoom_speed"`
	Target    Point3  `yaml:"target"`
}

type Point3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type MarkerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	Label    string `yaml:"label"`
	Workers  int    `yaml:"workers"`
}

type EngineConfig struct {
	FrameLimit float64 `yaml:"frame_limit"`
	Profiling  bool    `yaml:"profiling"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "oxy-map",
			Width:  1280,
			Height: 720,
		},
		Controls: ControlsConfig{
			Speed:     1.0,
			Stiffness: 0.15,
			Threshold: 10,
			MouseDrag: true,
		},
		Camera: CameraConfig{
			Distance:  500,
			Angle:     math.Pi / 4,
			Fov:       math.Pi / 4,
			PanSpeed:  1,
			ZoomSpeed: 25,
		},
		Marker: MarkerConfig{
			Enabled:  true,
			Endpoint: marker.DefaultEndpoint,
			Label:    marker.DefaultLabel,
			Workers:  2,
		},
		Engine: EngineConfig{
			FrameLimit: 60,
		},
	}
}

// Load reads the YAML file at path over Default and validates the result.
// An empty path returns Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if !finite(c.Controls.Speed) {
		errs = append(errs, fmt.Errorf("controls.speed must be finite, got %v", c.Controls.Speed))
	}
	if !(c.Controls.Stiffness > 0 && c.Controls.Stiffness <= 1) {
		errs = append(errs, fmt.Errorf("controls.stiffness must be in (0, 1], got %v", c.Controls.Stiffness))
	}
	if !finite(c.Controls.Threshold) || c.Controls.Threshold < 0 {
		errs = append(errs, fmt.Errorf("controls.threshold must be >= 0, got %v", c.Controls.Threshold))
	}
	if !(c.Camera.Fov > 0 && c.Camera.Fov < math.Pi) {
		errs = append(errs, fmt.Errorf("camera.fov must be in (0, pi), got %v", c.Camera.Fov))
	}
	if !finite(c.Camera.Distance) || c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera.distance must be positive, got %v", c.Camera.Distance))
	}
	if c.Engine.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("engine.frame_limit must be >= 0, got %v", c.Engine.FrameLimit))
	}
	if c.Marker.Enabled {
		if u, err := url.Parse(c.Marker.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("marker.endpoint must be an http(s) URL, got %q", c.Marker.Endpoint))
		}
		if c.Marker.Workers < 1 {
			errs = append(errs, fmt.Errorf("marker.workers must be >= 1, got %d", c.Marker.Workers))
		}
	}
	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
