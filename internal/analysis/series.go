package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/flysim/internal/dynamo"
)

var channels = map[string]func(dynamo.Sample) float64{
	"x":     func(s dynamo.Sample) float64 { return s.Position[0] },
	"y":     func(s dynamo.Sample) float64 { return s.Position[1] },
	"z":     func(s dynamo.Sample) float64 { return s.Position[2] },
	"roll":  func(s dynamo.Sample) float64 { return s.Euler[0] },
	"pitch": func(s dynamo.Sample) float64 { return s.Euler[1] },
	"yaw":   func(s dynamo.Sample) float64 { return s.Euler[2] },
	"speed": dynamo.Sample.Speed,
	"rate":  dynamo.Sample.BodyRate,
	"tau":   func(s dynamo.Sample) float64 { return s.Tau.Norm() },
}

// Channels lists the names accepted by Series.
func Channels() []string {
	names := make([]string, 0, len(channels))
	for name := range channels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Series(samples []dynamo.Sample, channel string) ([]float64, error) {
	get, ok := channels[channel]
	if !ok {
		return nil, fmt.Errorf("unknown channel %q (have %v)", channel, Channels())
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = get(s)
	}
	return out, nil
}

type Report struct {
	Channel    string
	Min        float64
	Max        float64
	Mean       float64
	RMS        float64
	DominantHz float64
}

func Analyze(samples []dynamo.Sample, channel string, dt float64) (Report, error) {
	data, err := Series(samples, channel)
	if err != nil {
		return Report{}, err
	}
	r := Report{Channel: channel}
	if len(data) == 0 {
		return r, nil
	}

	r.Min, r.Max = data[0], data[0]
	sum, sumSq := 0.0, 0.0
	for _, v := range data {
		r.Min = math.Min(r.Min, v)
		r.Max = math.Max(r.Max, v)
		sum += v
		sumSq += v * v
	}
	n := float64(len(data))
	r.Mean = sum / n
	r.RMS = math.Sqrt(sumSq / n)
	r.DominantHz = DominantFrequency(data, dt)
	return r, nil
}
