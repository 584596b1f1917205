// Package history records extraction runs in a SQLite journal.
//
// Extraction jobs are launched fire-and-forget, so the journal is the only
// durable trace of what was asked for: which media, which timepoint, the
// exact command line, and where the output and log were written. It exists
// for auditing and for re-running a past extraction by hand; nothing in the
// extraction path reads it back.
package history
