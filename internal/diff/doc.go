// Package diff computes line-level differences and three-way merges.
//
// LineDiff reports the operations converting one line slice into
// another. Apply replays a diff against an editor as ordinary line
// commands inside one transaction, so the whole patch is a single
// undo unit. Merge combines two descendants of a common base,
// reporting conflicts structurally instead of with markers.
package diff
