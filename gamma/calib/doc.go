// Package calib derives and applies the linear energy calibration that maps
// raw detector positions to keV.
//
// A [Transform] is derived from measured peak centers and the known energies
// of the lines that produced them:
//
//	t, err := calib.Derive([]float64{100, 500}, calib.PresetNa22)
//	keV := calib.Apply(raw, t)
//
// Both sequences are sorted before pairing, which assumes the energy axis is
// monotonic. The scale comes from the outermost pair; the offset is the mean
// of the per-point offsets, so inner points still contribute.
//
// A [Record] persists a transform with a timestamp and the catalog it was
// made against. Records are stored as JSON files ([FileStore]) or in SQLite
// ([SQLiteStore]).
package calib
