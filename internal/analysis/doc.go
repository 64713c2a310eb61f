// Package analysis turns recorded flight samples into signals and
// summarizes them.
//
//   - [Series]: extracts one named channel (position, attitude, speed) from samples
//   - [PowerSpectrum]: Hann-windowed magnitude spectrum of a signal
//   - [DominantFrequency]: strongest non-DC frequency in Hz
//   - [Analyze]: min/max/mean/RMS plus dominant frequency of a channel
//
// Attitude oscillation shows up as a peak in the roll, pitch or yaw spectrum:
//
//	r, _ := analysis.Analyze(samples, "pitch", dt)
//	fmt.Printf("pitch oscillates at %.2f Hz\n", r.DominantHz)
package analysis
