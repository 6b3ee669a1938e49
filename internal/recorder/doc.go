// Package recorder drives the frame-capture demo recording.
//
// A Recorder walks a fixed Script of numbered segments. Each segment is a
// sequence of clips (speak a narration, then capture frames for a fixed
// duration) and actions (docker-compose, curl) run between clips. Frames are
// grabbed one at a time through a Grabber and appended to a FrameWriter; by
// default both are ffmpeg subprocesses.
//
// Only two failures stop a recording before it starts: the session lock is
// held by another recorder, or the output cannot be opened. Everything after
// that is best-effort. Failed speech, grabs, writes and actions are logged,
// collected as outcomes in the Report, and the script carries on.
package recorder
