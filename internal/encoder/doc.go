// Package encoder runs the external-encoder demo recording: a single
// long-lived ffmpeg process captures screen and microphone and compresses
// them to MP4 while the operator presents by hand.
//
// The package has no frame-level logic. It checks that the encoder binary
// exists, builds the platform argument list, and supervises the process
// until the operator interrupts it. Capture devices are passed through
// verbatim; a device that does not exist surfaces as an ffmpeg error.
package encoder
