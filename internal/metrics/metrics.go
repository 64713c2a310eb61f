// Package metrics summarizes a flight run into scalar figures.
package metrics

import "github.com/san-kum/flysim/internal/dynamo"

// Standard returns the metric set reported by headless runs.
func Standard(bodies ...MassProperties) []dynamo.Metric {
	return []dynamo.Metric{
		NewKineticEnergy(bodies...),
		NewNormDrift(),
		NewControlEffort(),
		NewEnvelope(50, 5),
	}
}
