package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	*RunMetadata
	Steps    int       `json:"steps"`
	Times    []float64 `json:"times"`
	Position []float64 `json:"position"`
	Velocity []float64 `json:"velocity"`
	Phases   []string  `json:"phases"`
}

// ExportJSON writes a run and its samples as a single JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, samples []Sample) error {
	data := ExportData{
		RunMetadata: meta,
		Steps:       len(samples),
		Times:       make([]float64, len(samples)),
		Position:    make([]float64, len(samples)),
		Velocity:    make([]float64, len(samples)),
		Phases:      make([]string, len(samples)),
	}
	for i, s := range samples {
		data.Times[i] = s.Time
		data.Position[i] = s.Position
		data.Velocity[i] = s.Velocity
		data.Phases[i] = s.Phase.String()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
