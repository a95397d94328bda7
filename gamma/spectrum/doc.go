// Package spectrum holds pulse-height spectra and the small set of operations
// the analysis chain needs before peak detection.
//
// A [Spectrum] is an ordered list of bins, each a (position, counts) pair with
// strictly increasing positions. Positions are in raw detector units
// (millivolts, channel number) until a calibration maps them to keV.
//
// Every function in this package returns new data. The input spectrum is never
// modified, so a single measurement can feed several analysis runs.
//
// # Cleaning
//
// The last [ArtifactBins] bins of a multichannel analyser export collect
// out-of-range pulses and are removed with [Clean]:
//
//	cleaned := spectrum.Clean(raw)
//
// # Smoothing
//
// [Smooth] convolves the counts with a normalised Gaussian kernel using an FFT.
// It is an optional pre-conditioning step for noisy, low-statistics spectra.
package spectrum
