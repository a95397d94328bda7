// Package peak locates candidate photopeaks in a spectrum and cuts the
// windows ("domains") that the fitter works on.
//
// Detection uses topographic prominence rather than a fixed threshold: a local
// maximum qualifies when it rises at least the requested prominence above the
// higher of the two valleys that separate it from taller neighbours. This keeps
// detection stable on the sloping Compton continuum of a gamma spectrum.
//
//	cands := peak.Detect(s, 300, peak.WithWidth(3, 7))
//	domains := peak.IsolateCandidates(s, cands, 60)
package peak
