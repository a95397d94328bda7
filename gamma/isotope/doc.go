// Package isotope ranks catalog isotopes against fitted peak centers.
//
// For every peak and every catalog line the z-score
//
//	z = (center - energy) / centerStdErr
//
// is turned into a two-sided tail probability, expressed in percent and
// rounded to two decimals:
//
//	confidence = 100 * erfc(|z| / sqrt(2))
//
// A perfect match scores 100. Pairs that round to 0 are not reported. A peak
// whose center uncertainty is zero or not finite has no meaningful z-score
// and matches nothing.
//
// Results are grouped by peak number ascending and, within a peak, sorted by
// confidence descending. Equal confidences keep catalog order.
package isotope
