package sim

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/san-kum/gravscroll/internal/config"
	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/san-kum/gravscroll/internal/session"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of headless sessions.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// WheelBurst repeats one wheel sample every Every seconds in [From, To).
type WheelBurst struct {
	From   float64 `yaml:"from"`
	To     float64 `yaml:"to"`
	Every  float64 `yaml:"every"`
	DeltaY float64 `yaml:"delta_y"`
}

// ScenarioStep is a single session. Zero values fall back to defaults.
type ScenarioStep struct {
	Name           string             `yaml:"name"`
	Duration       float64            `yaml:"duration"`
	Dt             float64            `yaml:"dt"`
	ContentHeight  float64            `yaml:"content_height"`
	ViewportHeight float64            `yaml:"viewport_height"`
	StartMode      string             `yaml:"start_mode"`
	StartPosition  float64            `yaml:"start_position"`
	Params         map[string]float64 `yaml:"params"`
	Wheel          string             `yaml:"wheel"`
	Bursts         []WheelBurst       `yaml:"bursts"`
	SaveAs         string             `yaml:"save_as"`
}

type StepResult struct {
	Step   ScenarioStep
	Config Config
	Params gravity.Params
	Result *Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// Script merges the literal wheel samples with the bursts.
func (st ScenarioStep) Script() (Script, error) {
	script, err := ParseScript(st.Wheel)
	if err != nil {
		return nil, err
	}
	for _, b := range st.Bursts {
		if b.Every <= 0 {
			return nil, fmt.Errorf("burst every must be positive, got %f", b.Every)
		}
		script = append(script, Burst(b.From, b.To, b.Every, b.DeltaY)...)
	}
	sort.SliceStable(script, func(i, j int) bool { return script[i].At < script[j].At })
	return script, nil
}

func (st ScenarioStep) config() (Config, error) {
	mode, err := session.ParseStartMode(st.StartMode)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Dt:             st.Dt,
		Duration:       st.Duration,
		ContentHeight:  st.ContentHeight,
		ViewportHeight: st.ViewportHeight,
		Mode:           mode,
		StartPosition:  st.StartPosition,
	}
	if cfg.Dt == 0 {
		cfg.Dt = 1.0 / config.DefaultFPS
	}
	if cfg.Duration == 0 {
		cfg.Duration = 10
	}
	if cfg.ContentHeight == 0 {
		cfg.ContentHeight = config.DefaultContentHeight
	}
	if cfg.ViewportHeight == 0 {
		cfg.ViewportHeight = config.DefaultViewportHeight
	}
	return cfg, nil
}

// RunScenario executes all steps in a scenario, each from base with the
// step's parameter overrides applied.
func RunScenario(ctx context.Context, scenario *Scenario, base gravity.Params, logger *slog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("scenario step", "n", i+1, "of", len(scenario.Steps), "name", step.Name)

		cfg, err := step.config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		script, err := step.Script()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		params := base
		patch, err := gravity.PatchFromMap(step.Params)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		if ignored := params.Update(patch); len(ignored) > 0 {
			logger.Warn("zero-valued parameters ignored", "step", i+1, "params", ignored)
		}

		s := New(params)
		s.SetLogger(logger)
		result, err := s.Run(ctx, script, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Config: cfg, Params: params, Result: result})
	}

	return results, nil
}
