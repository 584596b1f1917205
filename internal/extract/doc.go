// Package extract turns a timepoint plus extraction parameters into an exact
// ffmpeg invocation and launches it without blocking the caller.
//
// Three shapes are produced: a numbered frame sequence, a stream-copy clip,
// and a re-encoded clip. Argument order is part of the contract; outputs
// land in directories derived from the media file name. The runner is
// fire-and-forget: it records the command and redirects tool output to a
// fixed log file, but never observes the exit status.
package extract
