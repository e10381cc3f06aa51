// Package naming guards the output names of a batch rename: every output
// path is claimed by exactly one input, whether that input is renamed or
// stays where it is.
package naming
