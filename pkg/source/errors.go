package source

import "errors"

// ErrMalformedDescriptor is returned when a descriptor cannot be constructed.
// Renderers never fail; every structural problem is rejected up front.
var ErrMalformedDescriptor = errors.New("malformed descriptor")

// MaxNestingDepth bounds how many classes may be nested inside one another,
// the outermost class included.
const MaxNestingDepth = 32
