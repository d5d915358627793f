package main

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/raincatch/internal/core"
	"github.com/vovakirdan/raincatch/internal/registry"
)

func TestPrintScenes(t *testing.T) {
	var buf bytes.Buffer
	printScenes(&buf, registry.List())

	out := buf.String()
	for _, want := range []string{"raincatch", "storm", "Rain Catch"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printScenes(&buf, nil)
	if !strings.Contains(buf.String(), "No scenes") {
		t.Errorf("empty list output = %q", buf.String())
	}
}

func TestSimulateStorm(t *testing.T) {
	scene, err := registry.Create("storm")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	if err := simulate(&buf, scene, cfg, 120, true); err != nil {
		t.Fatalf("simulate() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Rain Catch: Storm", "120 frames", "Skipped pairs", "Caught"} {
		if !strings.Contains(out, want) {
			t.Errorf("sim output missing %q:\n%s", want, out)
		}
	}
}

func TestSimConfigKeepsDelta(t *testing.T) {
	tests := []struct {
		dt   float64
		want float64
	}{
		{0, 1.0 / 60.0},
		{0.3, 0.3},
		{0.7, 0.7},
		{3, 3},
	}

	for _, tt := range tests {
		cfg, err := simConfig(60, tt.dt, 0)
		if err != nil {
			t.Fatalf("simConfig(dt=%v) error = %v", tt.dt, err)
		}
		if got := cfg.Delta(); got != tt.want {
			t.Errorf("simConfig(dt=%v).Delta() = %v, expected %v", tt.dt, got, tt.want)
		}
		if cfg.Seed != 1 {
			t.Errorf("simConfig(seed=0).Seed = %d, expected 1", cfg.Seed)
		}
	}

	for _, dt := range []float64{-0.1, math.NaN(), math.Inf(1)} {
		if _, err := simConfig(60, dt, 0); !errors.Is(err, errBadSimFlags) {
			t.Errorf("simConfig(dt=%v) error = %v, expected errBadSimFlags", dt, err)
		}
	}
	if _, err := simConfig(0, 0.1, 0); !errors.Is(err, errBadSimFlags) {
		t.Errorf("simConfig(fps=0) error = %v, expected errBadSimFlags", err)
	}
}

func TestSimulateLargeDelta(t *testing.T) {
	scene, err := registry.Create("raincatch")
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := simConfig(60, 3, 7)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := simulate(&buf, scene, cfg, 10, false); err != nil {
		t.Fatalf("simulate() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Rain Catch") {
		t.Errorf("sim output missing title:\n%s", buf.String())
	}
}
