// ABOUTME: Sentinel errors surfaced by filter validation
// ABOUTME: Matched with errors.Is by callers

package search

import "errors"

var (
	// ErrInvalidFilter indicates a structurally malformed filter, one that
	// carries a list value somewhere in its nesting
	ErrInvalidFilter = errors.New("search: invalid filter")

	// ErrUnsupportedFilter indicates a filter addressing a path the include
	// rule left out of the index
	ErrUnsupportedFilter = errors.New("search: filter not supported by index")
)
