// Package pipeline chains the spectrum stages into one call.
//
// [Analyze] cleans a raw spectrum, detects and isolates peaks, fits every
// domain in parallel, optionally maps the fitted centers through a
// calibration and ranks them against an isotope catalog:
//
//	rep, err := pipeline.Analyze(ctx, raw, catalog,
//		pipeline.WithProminence(100),
//		pipeline.WithDomainWidth(60),
//	)
//
// A peak that cannot be fitted does not fail the run; its error is kept in
// the [Report] next to the peaks that succeeded. [Calibrate] runs the same
// stages up to fitting and derives a transform, which is all-or-nothing.
package pipeline
