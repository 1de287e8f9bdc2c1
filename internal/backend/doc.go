// Package backend defines the media backend boundary: every byte-level media
// operation (probe, cut, concatenate, edit properties) shells out to an
// external toolchain behind the Backend interface. The pipeline core stays
// testable against the Fake implementation without invoking real binaries.
package backend
