package searcher

import (
	"math"
	"time"
)

// Search parameters

// Infinity bounds every score. Its negation stays representable and leaves
// headroom for comparisons without wraparound.
const Infinity = math.MaxInt32 / 4

const DefaultRadius = 2 // Neighborhood radius for candidate moves

const (
	DefaultMaxDepth = 5
	DefaultDuration = 3 * time.Second
)
