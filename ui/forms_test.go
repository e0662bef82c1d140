package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/google/go-cmp/cmp"

	"termchess/config"
	"termchess/engine"
	"termchess/types"
)

func TestGameSetupConfig(t *testing.T) {
	defaults := engine.DefaultConfig()
	defaults.AutoFlip = true
	defaults.Moves = []types.Move{{From: types.MustCoord(6, 4), To: types.MustCoord(4, 4)}}

	var started *engine.GameConfig
	setup := NewGameSetup(defaults, func(gc engine.GameConfig) { started = &gc }, func() {}, nil)

	got := setup.Config()
	if diff := cmp.Diff(defaults, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	got.Moves[0].To = types.MustCoord(5, 4)
	if setup.Config().Moves[0].To != types.MustCoord(4, 4) {
		t.Error("Config should return a copy of the replay moves")
	}
	if started != nil {
		t.Error("start callback fired without pressing start")
	}
	if setup.Form() == nil {
		t.Error("Form returned nil")
	}
}

func TestColorConfigSelection(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()

	cfg := config.DefaultConfig
	done := false
	cc := NewColorConfig(&cfg, nil, func() { done = true })

	light, dark := cc.Selection()
	if light != cfg.Theme.Colors.LightSquare || dark != cfg.Theme.Colors.DarkSquare {
		t.Fatalf("initial selection (%d, %d), want config colours", light, dark)
	}

	cc.colorList.SetCurrentItem(0)
	if light, _ := cc.Selection(); light != lightColors[0].code {
		t.Errorf("light = %d, want %d", light, lightColors[0].code)
	}

	cc.ToggleMode()
	if _, d := cc.Selection(); d != dark {
		t.Errorf("switching lists changed the dark colour to %d", d)
	}
	cc.colorList.SetCurrentItem(3)

	cc.Apply()
	if cfg.Theme.Colors.LightSquare != lightColors[0].code || cfg.Theme.Colors.DarkSquare != darkColors[3].code {
		t.Errorf("config colours (%d, %d) not applied", cfg.Theme.Colors.LightSquare, cfg.Theme.Colors.DarkSquare)
	}
	if _, err := os.Stat(filepath.Join(dir, "termchess", "config.yaml")); err != nil {
		t.Errorf("config not saved: %v", err)
	}
	if done {
		t.Error("done callback fired by Apply")
	}
}
