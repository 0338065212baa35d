// Package diag defines the diagnostic model shared by all compiler phases.
//
// Diagnostics are collected, never thrown: each phase reports through a
// Reporter, the driver gathers everything into a Bag, sorts it into source
// order, and hands it to the caller. A panic anywhere in the pipeline is a
// compiler bug, never a reaction to user input.
//
// Rendering lives in internal/diagfmt; this package only models the data.
package diag
