// Package search implements plain-text term matching over line-oriented
// content. Matches never span line breaks; positions are rune columns.
//
// Case-insensitive matching uses Unicode case folding, so the matched
// segment in the text may differ in length from the term. Ranges
// returned always describe the text as it appears in the lines.
//
// A Searcher is immutable after construction and safe for concurrent
// use.
package search
