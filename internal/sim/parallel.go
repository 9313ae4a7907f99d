package sim

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/san-kum/gravscroll/internal/gravity"
)

// Sweep runs the same script once per value of one parameter.
type Sweep struct {
	base   gravity.Params
	param  string
	values []float64
}

type SweepPoint struct {
	Value  float64
	Result *Result
}

func NewSweep(base gravity.Params, param string, values []float64) (*Sweep, error) {
	if _, err := gravity.PatchFromMap(map[string]float64{param: 1}); err != nil {
		return nil, err
	}
	return &Sweep{base: base, param: param, values: values}, nil
}

// Run simulates every value concurrently. Points keep the order of values.
func (sw *Sweep) Run(ctx context.Context, script Script, cfg Config) ([]SweepPoint, error) {
	points := make([]SweepPoint, len(sw.values))
	errs := make([]error, len(sw.values))

	var wg sync.WaitGroup
	for i, v := range sw.values {
		wg.Add(1)
		go func(idx int, value float64) {
			defer wg.Done()

			patch, _ := gravity.PatchFromMap(map[string]float64{sw.param: value})
			params := sw.base
			if ignored := params.Update(patch); len(ignored) > 0 {
				errs[idx] = fmt.Errorf("%s=%g: zero values are not applied", sw.param, value)
				return
			}

			s := New(params)
			s.SetLogger(quiet)
			points[idx].Value = value
			points[idx].Result, errs[idx] = s.Run(ctx, script, cfg)
		}(i, v)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return points, nil
}

// Best returns the point with the lowest value of metric. Negative values
// mean the metric never triggered and are skipped.
func Best(points []SweepPoint, metric string) (SweepPoint, bool) {
	best := math.Inf(1)
	var bestPoint SweepPoint
	found := false
	for _, p := range points {
		if p.Result == nil {
			continue
		}
		v, ok := p.Result.Metrics[metric]
		if !ok || v < 0 {
			continue
		}
		if v < best {
			best = v
			bestPoint = p
			found = true
		}
	}
	return bestPoint, found
}
