package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of bins 0..n/2 of the Hann-windowed,
// mean-removed signal.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	buf := make([]complex128, n)
	for i, v := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		buf[i] = complex((v-mean)*window, 0)
	}

	spectrum := fft.FFT(buf)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency is the frequency in Hz of the strongest non-DC bin of a
// signal sampled every dt seconds. It is 0 for flat or too-short signals.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	peak, peakBin := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > peak {
			peak, peakBin = ps[i], i
		}
	}
	if peak < 1e-12 {
		return 0
	}
	return float64(peakBin) / (float64(len(data)) * dt)
}
