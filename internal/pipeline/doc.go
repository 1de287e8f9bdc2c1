// Package pipeline drives the two-phase extraction workflow: scan every
// input for chapters, filter them, cut matching segments via the media
// backend, and merge the survivors. Phase two runs sequentially or on a
// bounded worker pool; either way the merged segment order is fully
// determined by input order and per-file filtered chapter order.
package pipeline
