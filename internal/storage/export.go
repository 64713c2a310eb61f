package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/flysim/internal/sim"
)

type ExportData struct {
	Vehicles []string           `json:"vehicles"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	Tracks   []Track            `json:"tracks"`
	Metrics  map[string]float64 `json:"metrics"`
}

// Track is the flight path of one vehicle.
type Track struct {
	Name        string       `json:"name"`
	Position    [][3]float64 `json:"position"`
	Orientation [][4]float64 `json:"orientation"` // x, y, z, w
	Euler       [][3]float64 `json:"euler"`
	Tau         [][6]float64 `json:"tau"`
}

func ExportJSON(w io.Writer, dt, duration float64, result *sim.Result) error {
	data := ExportData{
		Vehicles: result.Vehicles,
		Dt:       dt,
		Duration: duration,
		Steps:    result.StepsTaken,
		Times:    result.Times,
		Tracks:   make([]Track, len(result.Samples)),
		Metrics:  result.Metrics,
	}

	for i, samples := range result.Samples {
		tr := Track{
			Position:    make([][3]float64, len(samples)),
			Orientation: make([][4]float64, len(samples)),
			Euler:       make([][3]float64, len(samples)),
			Tau:         make([][6]float64, len(samples)),
		}
		if i < len(result.Vehicles) {
			tr.Name = result.Vehicles[i]
		}
		for j, s := range samples {
			tr.Position[j] = s.Position
			q := s.Orientation
			tr.Orientation[j] = [4]float64{q.X, q.Y, q.Z, q.W}
			tr.Euler[j] = s.Euler
			tr.Tau[j] = s.Tau
		}
		data.Tracks[i] = tr
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
