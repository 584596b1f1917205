// Package timepoint implements the ordered timepoint collection.
//
// A timepoint marks an offset into a media file in integer microseconds.
// The store keeps its contents sorted ascending by time and reassigns every
// label to the 1-based position in that order after each structural change,
// so labels are always contiguous. Display indices handed to Remove and
// UpdateRemark come from user selections; an index that matches nothing is a
// "nothing selected" condition, never a fault.
package timepoint
