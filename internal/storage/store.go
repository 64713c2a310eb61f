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
	"strings"
	"time"

	"github.com/san-kum/flysim/internal/dynamo"
	"github.com/san-kum/flysim/internal/sim"
)

// Columns is the states.csv header.
var Columns = []string{
	"time", "vehicle",
	"x", "y", "z",
	"qx", "qy", "qz", "qw",
	"roll", "pitch", "yaw",
	"u", "v", "w", "p", "q", "r",
	"tau0", "tau1", "tau2", "tau3", "tau4", "tau5",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Vehicles  []string           `json:"vehicles"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Script    string             `json:"script,omitempty"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and states.csv under a fresh run directory
// and returns the run ID.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", strings.Join(result.Vehicles, "-"), now.UnixNano())
	meta.Timestamp = now
	meta.Vehicles = result.Vehicles
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics

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

	if err := WriteCSV(csvFile, result); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteCSV writes one row per vehicle per recorded step.
func WriteCSV(out io.Writer, result *sim.Result) error {
	w := csv.NewWriter(out)
	if err := w.Write(Columns); err != nil {
		return err
	}

	for step := range result.Times {
		for _, samples := range result.Samples {
			if step >= len(samples) {
				continue
			}
			if err := w.Write(row(samples[step])); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func row(s dynamo.Sample) []string {
	vals := []float64{
		s.Position[0], s.Position[1], s.Position[2],
		s.Orientation.X, s.Orientation.Y, s.Orientation.Z, s.Orientation.W,
		s.Euler[0], s.Euler[1], s.Euler[2],
	}
	vals = append(vals, s.Nu[:]...)
	vals = append(vals, s.Tau[:]...)

	out := make([]string, 0, len(Columns))
	out = append(out, strconv.FormatFloat(s.Time, 'f', 6, 64), strconv.Itoa(s.Vehicle))
	for _, v := range vals {
		out = append(out, strconv.FormatFloat(v, 'f', 6, 64))
	}
	return out
}

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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads back the samples of one vehicle of a saved run.
func (s *Store) LoadStates(runID string, vehicle int) ([]dynamo.Sample, error) {
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
		return []dynamo.Sample{}, nil
	}

	samples := make([]dynamo.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(Columns) {
			continue
		}
		idx, err := strconv.Atoi(record[1])
		if err != nil || idx != vehicle {
			continue
		}

		vals := make([]float64, len(record))
		ok := true
		for j, field := range record {
			if j == 1 {
				continue
			}
			if vals[j], err = strconv.ParseFloat(field, 64); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		samples = append(samples, parseSample(idx, vals))
	}
	return samples, nil
}

func parseSample(idx int, v []float64) dynamo.Sample {
	s := dynamo.Sample{Time: v[0], Vehicle: idx}
	copy(s.Position[:], v[2:5])
	s.Orientation.X, s.Orientation.Y, s.Orientation.Z, s.Orientation.W = v[5], v[6], v[7], v[8]
	copy(s.Euler[:], v[9:12])
	copy(s.Nu[:], v[12:18])
	copy(s.Tau[:], v[18:24])
	return s
}
