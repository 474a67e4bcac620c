package segment

import "errors"

// ErrClusteringTimeout is returned when the clustering call exceeds the
// configured timeout. The request fails; nothing partial is returned.
var ErrClusteringTimeout = errors.New("segment: clustering timed out")
