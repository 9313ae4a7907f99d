package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/gravscroll/internal/gravity"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type MilestoneRecord struct {
	Kind     string  `json:"kind"`
	Time     float64 `json:"time"`
	Position float64 `json:"position"`
}

type RunMetadata struct {
	ID             string             `json:"id"`
	Label          string             `json:"label,omitempty"`
	Timestamp      time.Time          `json:"timestamp"`
	Mode           string             `json:"mode"`
	Dt             float64            `json:"dt"`
	Duration       float64            `json:"duration"`
	ContentHeight  float64            `json:"content_height"`
	ViewportHeight float64            `json:"viewport_height"`
	Params         gravity.Params     `json:"params"`
	Metrics        map[string]float64 `json:"metrics"`
	Milestones     []MilestoneRecord  `json:"milestones"`
}

// Sample is one recorded frame.
type Sample struct {
	Time        float64
	Position    float64
	Velocity    float64
	UpwardForce float64
	MaxScroll   float64
	Phase       gravity.Phase
}

var header = []string{"time", "position", "velocity", "upward_force", "max_scroll", "phase"}

// Save writes metadata.json and states.csv into a fresh run directory and
// returns the run id.
func (s *Store) Save(meta RunMetadata, samples []Sample) (string, error) {
	meta.ID = "run_" + uuid.NewString()[:8]
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, samples); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteCSV writes samples with a header row.
func WriteCSV(out io.Writer, samples []Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
			strconv.FormatFloat(smp.Position, 'f', 6, 64),
			strconv.FormatFloat(smp.Velocity, 'f', 6, 64),
			strconv.FormatFloat(smp.UpwardForce, 'f', 6, 64),
			strconv.FormatFloat(smp.MaxScroll, 'f', 6, 64),
			smp.Phase.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Sample{}, nil
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(header) {
			continue
		}
		var vals [5]float64
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		samples = append(samples, Sample{
			Time:        vals[0],
			Position:    vals[1],
			Velocity:    vals[2],
			UpwardForce: vals[3],
			MaxScroll:   vals[4],
			Phase:       parsePhase(record[5]),
		})
	}
	return samples, nil
}

func parsePhase(s string) gravity.Phase {
	for _, p := range []gravity.Phase{gravity.PhaseFree, gravity.PhaseBouncing, gravity.PhaseAtBottom, gravity.PhaseAtTop} {
		if p.String() == s {
			return p
		}
	}
	return gravity.PhaseFree
}
