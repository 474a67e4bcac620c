package cluster

import "errors"

var (
	// ErrTooFewPoints means the dataset holds fewer distinct feature points
	// than the configured number of clusters.
	ErrTooFewPoints = errors.New("clustering: fewer distinct points than clusters")

	// ErrDegenerateFeature means a feature column has fewer than two usable
	// values, so distances are meaningless.
	ErrDegenerateFeature = errors.New("clustering: feature column has fewer than 2 usable values")

	// ErrNoModel means the pretrained clusterer has no artifact for the
	// requested feature pair.
	ErrNoModel = errors.New("clustering: no model artifact for feature pair")
)

// IsDataError reports whether err is caused by the uploaded data rather
// than by the service itself.
func IsDataError(err error) bool {
	return errors.Is(err, ErrTooFewPoints) || errors.Is(err, ErrDegenerateFeature)
}
