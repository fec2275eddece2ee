// SPDX-License-Identifier: MIT

// Package hysteresis traces magnetization against a swept external field at
// fixed temperature.
//
// The run starts from the all-up configuration. For each field H of the
// caller's path it performs StepsPerField Metropolis passes (N micro-steps
// each) and records (H, Σs/N). The configuration carries over from one field
// to the next, which is what gives the loop its memory, so field points run
// sequentially.
//
// The Wolff update is deliberately not used here: its bond probability is
// derived for H = 0 and does not satisfy detailed balance in a field.
//
// Loop builds the conventional closed path: a forward ramp −hMax → +hMax
// followed by a backward ramp from one step below +hMax back to −hMax.
//
// Errors:
//
//   - ErrInvalidParameter: bad request or option, returned before any work.
//   - ErrCancelled: ctx ended between field points; the points already
//     recorded are returned with it.
package hysteresis
