// Package fit refines peak candidates by fitting a line shape to each domain
// with a Levenberg-Marquardt least-squares solver.
//
// The default shape is the unnormalised Gaussian
//
//	f(x) = A * exp(-(x-c)^2 / (2w^2)) + b
//
// where A is the peak height above the baseline b. A Lorentzian shape is
// available through [WithShape]. All four parameters are constrained to be
// non-negative.
//
// The fitted center and its standard error are the values the rest of the
// chain uses. Standard errors come from the parameter covariance
// s^2 (J^T J)^-1 with s^2 = SSR / (n - 4), the same estimate a least-squares
// curve fit reports when the data carry no explicit weights.
//
// Fits are independent per peak; [FitAll] runs them on a bounded worker pool
// and keeps results positional, so result i and error i always belong to
// domain i.
package fit
