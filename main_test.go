package main

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/skirt/pkg/loaders"
	"github.com/df07/skirt/pkg/log"
	"github.com/df07/skirt/pkg/scene"
)

func TestMain(m *testing.M) {
	log.SetSink(io.Discard)
	os.Exit(m.Run())
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		value string
		want  int64
	}{
		{"0", 0},
		{"42", 42},
		{"-3", -3},
		{"marbles", scene.Seed("marbles")},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := parseSeed(tt.value); got != tt.want {
				t.Errorf("parseSeed(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestRenderBuiltinScene(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames", "single.png")

	err := newApp().Run([]string{"skirt", "render",
		"--scene", "single", "--width", "8", "--height", "4",
		"--spp", "1", "--depth", "2", "--tile", "4", "--workers", "2",
		"--out", out})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	file, err := os.Open(out)
	if err != nil {
		t.Fatalf("Expected output image: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("Expected 8x4 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderDescriptionUsesItsResolution(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.yaml")
	description := `Film.image: {resolution: [6, 3]}
Integrator.path: {samples: 1, maxDepth: 2}
World:
  - sphere: {center: [0, 0, -1], radius: 0.5, material: {type: light, emit: [1, 1, 1]}}
`
	if err := os.WriteFile(path, []byte(description), 0644); err != nil {
		t.Fatalf("Failed to write description: %v", err)
	}

	out := filepath.Join(dir, "tiny.pfm")
	if err := newApp().Run([]string{"skirt", "render", "--description", path, "--out", out}); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Expected output image: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PF\n6 3\n")) {
		t.Errorf("Expected a 6x3 PFM header, got %q", data[:min(len(data), 12)])
	}
	if want := len("PF\n6 3\n-1.0\n") + 6*3*3*4; len(data) != want {
		t.Errorf("Expected %d bytes, got %d", want, len(data))
	}
}

func TestRenderFlagsOverrideDescription(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.yaml")
	description := `Film.image: {resolution: [6, 3]}
World:
  - sphere: {center: [0, 0, -1], radius: 0.5, material: {type: lambertian, albedo: [0.5, 0.5, 0.5]}}
`
	if err := os.WriteFile(path, []byte(description), 0644); err != nil {
		t.Fatalf("Failed to write description: %v", err)
	}

	out := filepath.Join(dir, "tiny.ppm")
	err := newApp().Run([]string{"skirt", "render", "--description", path,
		"--width", "4", "--height", "2", "--spp", "1", "--depth", "1", "--out", out})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Expected output image: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n4 2\n255\n") {
		t.Errorf("Expected a 4x2 PPM header, got %q", strings.SplitN(string(data), "\n", 4)[:3])
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"--scene", "nonexistent"}},
		{"unsupported output", []string{"--scene", "single", "--out", filepath.Join(dir, "frame.gif")}},
		{"missing description", []string{"--description", filepath.Join(dir, "missing.yaml")}},
		{"zero width", []string{"--scene", "single", "--width", "0"}},
		{"zero samples", []string{"--scene", "single", "--spp", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"skirt", "render", "--width", "4", "--height", "2"}, tt.args...)
			if err := newApp().Run(args); err == nil {
				t.Errorf("Expected an error for %v", tt.args)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "frame.gif")); !os.IsNotExist(err) {
		t.Errorf("Expected no file for an unsupported format, stat returned %v", err)
	}
}

func TestScenesCommand(t *testing.T) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf

	if err := app.Run([]string{"skirt", "scenes", "--dir", "scenes"}); err != nil {
		t.Fatalf("scenes failed: %v", err)
	}

	listing := buf.String()
	for _, want := range []string{"cornell", "random", "Cornell Box - Empty Room", "scenes/marbles.yaml"} {
		if !strings.Contains(listing, want) {
			t.Errorf("Expected listing to contain %q:\n%s", want, listing)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"verbose", []string{"skirt", "-v", "scenes", "--dir", "scenes"}, "cornell"},
		{"very verbose", []string{"skirt", "-vv", "scenes", "--dir", "scenes"}, "cornell"},
		{"version", []string{"skirt", "--version"}, "0.1.0"},
	}

	defer log.SetLevel(log.Notice)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			app := newApp()
			app.Writer = &buf

			if err := app.Run(tt.args); err != nil {
				t.Fatalf("%v failed: %v", tt.args, err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("Expected output to contain %q:\n%s", tt.want, buf.String())
			}
		})
	}
}

func TestExampleDescriptionsLoad(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("scenes", "*.yaml"))
	if err != nil {
		t.Fatalf("Failed to list scenes: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("Expected example scene descriptions")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			desc, err := loaders.LoadDescription(file)
			if err != nil {
				t.Fatalf("LoadDescription(%s) failed: %v", file, err)
			}
			sc := desc.Scene()
			if sc.GetPrimitiveCount() == 0 {
				t.Errorf("Expected shapes in %s", file)
			}
		})
	}
}
