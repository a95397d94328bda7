// Package commands defines the gammaspotter CLI.
//
// Commands
//
//   - info       Print spectrum statistics
//   - peaks      Detect peaks by prominence
//   - fit        Fit a peak shape to every detected peak
//   - calibrate  Derive and store an energy calibration from known lines
//   - apply      Write calibrated copies of spectrum files
//   - match      Rank catalog isotopes against given energies
//   - analyze    Run the whole chain and print ranked isotope matches
//
// Flag defaults come from GAMMASPOTTER_ environment variables and an
// optional .env file in the working directory.
package commands
