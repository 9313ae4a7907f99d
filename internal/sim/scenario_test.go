package sim

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/san-kum/gravscroll/internal/session"
)

const climbScenario = `name: climb
description: fall, then climb back out
steps:
  - name: drop
    duration: 4
    content_height: 1800
    viewport_height: 800
  - name: climb
    duration: 8
    content_height: 1800
    viewport_height: 800
    params:
      g: 20
    bursts:
      - {from: 3, to: 6, every: 0.05, delta_y: -120}
    save_as: climb-run
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, climbScenario))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if sc.Name != "climb" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}
	climb := sc.Steps[1]
	if climb.Params["g"] != 20 || climb.SaveAs != "climb-run" {
		t.Errorf("climb step = %+v", climb)
	}
	script, err := climb.Script()
	if err != nil {
		t.Fatal(err)
	}
	if len(script) != 60 {
		t.Errorf("expected 60 wheel samples, got %d", len(script))
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, climbScenario))
	if err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc, gravity.DefaultParams(), quiet)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].Params.G != gravity.DefaultG {
		t.Errorf("drop step should use base gravity, got %v", results[0].Params.G)
	}
	if results[1].Params.G != 20 {
		t.Errorf("climb step gravity = %v, want 20", results[1].Params.G)
	}
	if results[0].Config.Dt != 1.0/60 || results[0].Config.Mode != session.StartAtTop {
		t.Errorf("defaults not applied: %+v", results[0].Config)
	}
	if results[1].Result.Metrics["milestones"] != 3 {
		t.Errorf("climb step milestones = %v, want 3", results[1].Result.Metrics["milestones"])
	}
}

func TestRunScenarioUnknownParam(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Params: map[string]float64{"mass": 1}}}}
	if _, err := RunScenario(context.Background(), sc, gravity.DefaultParams(), quiet); err == nil {
		t.Error("expected error for unknown parameter")
	}
}
