package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-map/engine/marker"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		createFile bool
		content    string
		wantErr    string
		validate   func(t *testing.T, cfg *Config)
	}{
		{
			name:       "full file",
			createFile: true,
			content: `window:
  title: "map"
  width: 800
  height: 600
controls:
  speed: 2.5
  stiffness: 0.3
  threshold: 4
  mouse_drag: false
camera:
  distance: 250
  target:
    x: 10
    z: -20
marker:
  enabled: true
  endpoint: "http://127.0.0.1:9000/chunks"
  label: "home"
  workers: 4
engine:
  frame_limit: 144
  profiling: true
`,
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Window.Title != "map" || cfg.Window.Width != 800 || cfg.Window.Height != 600 {
					t.Errorf("Window = %+v", cfg.Window)
				}
				if cfg.Controls.Speed != 2.5 || cfg.Controls.Stiffness != 0.3 || cfg.Controls.Threshold != 4 || cfg.Controls.MouseDrag {
					t.Errorf("Controls = %+v", cfg.Controls)
				}
				if cfg.Camera.Distance != 250 || cfg.Camera.Target != (Point3{X: 10, Z: -20}) {
					t.Errorf("Camera = %+v", cfg.Camera)
				}
				if cfg.Marker.Endpoint != "http://127.0.0.1:9000/chunks" || cfg.Marker.Label != "home" || cfg.Marker.Workers != 4 {
					t.Errorf("Marker = %+v", cfg.Marker)
				}
				if cfg.Engine.FrameLimit != 144 || !cfg.Engine.Profiling {
					t.Errorf("Engine = %+v", cfg.Engine)
				}
			},
		},
		{
			name:       "partial file keeps defaults",
			createFile: true,
			content: `controls:
  stiffness: 0.5
`,
			validate: func(t *testing.T, cfg *Config) {
				def := Default()
				if cfg.Controls.Stiffness != 0.5 {
					t.Errorf("Stiffness = %v, want 0.5", cfg.Controls.Stiffness)
				}
				if cfg.Controls.Speed != def.Controls.Speed || cfg.Window != def.Window || cfg.Marker != def.Marker {
					t.Errorf("defaults not kept: %+v", cfg)
				}
			},
		},
		{
			name:       "missing file",
			createFile: false,
			wantErr:    "read",
		},
		{
			name:       "invalid yaml",
			createFile: true,
			content:    "controls: [speed",
			wantErr:    "parse",
		},
		{
			name:       "invalid stiffness",
			createFile: true,
			content: `controls:
  stiffness: 1.5
`,
			wantErr: "controls.stiffness",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "oxymap.yaml")
			if tt.createFile {
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("write config: %v", err)
				}
			}

			cfg, err := Load(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want it to mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"nan speed", func(c *Config) { c.Controls.Speed = math.NaN() }, "controls.speed"},
		{"zero stiffness", func(c *Config) { c.Controls.Stiffness = 0 }, "controls.stiffness"},
		{"negative threshold", func(c *Config) { c.Controls.Threshold = -1 }, "controls.threshold"},
		{"flat fov", func(c *Config) { c.Camera.Fov = math.Pi }, "camera.fov"},
		{"negative distance", func(c *Config) { c.Camera.Distance = -5 }, "camera.distance"},
		{"negative frame limit", func(c *Config) { c.Engine.FrameLimit = -1 }, "engine.frame_limit"},
		{"bad endpoint", func(c *Config) { c.Marker.Endpoint = "localhost:3000" }, "marker.endpoint"},
		{"no workers", func(c *Config) { c.Marker.Workers = 0 }, "marker.workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Validate() = %v, want an error mentioning %q", err, tt.field)
			}
		})
	}
}

func TestValidateSkipsDisabledMarker(t *testing.T) {
	cfg := Default()
	cfg.Marker.Enabled = false
	cfg.Marker.Endpoint = ""
	cfg.Marker.Workers = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDefaultMarkerMatchesMarkerPackage(t *testing.T) {
	cfg := Default()
	if cfg.Marker.Endpoint != marker.DefaultEndpoint {
		t.Errorf("Endpoint = %q, want %q", cfg.Marker.Endpoint, marker.DefaultEndpoint)
	}
	if cfg.Marker.Label != marker.DefaultLabel {
		t.Errorf("Label = %q, want %q", cfg.Marker.Label, marker.DefaultLabel)
	}
}
