package renderer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownQuality is returned by ParseQuality for an unrecognized quality name
var ErrUnknownQuality = errors.New("unknown quality")

// Quality selects the subpixel grid used for supersampling
type Quality int

const (
	QualityFast  Quality = iota // 1x1 subsamples
	QualityGood                 // 4x4 subsamples
	QualityGreat                // 8x8 subsamples
)

// GridSize returns the number of subsamples along each pixel axis
func (q Quality) GridSize() int {
	switch q {
	case QualityGood:
		return 4
	case QualityGreat:
		return 8
	default:
		return 1
	}
}

// SamplesPerPixel returns the total number of subsamples per pixel
func (q Quality) SamplesPerPixel() int {
	n := q.GridSize()
	return n * n
}

func (q Quality) String() string {
	switch q {
	case QualityFast:
		return "fast"
	case QualityGood:
		return "good"
	case QualityGreat:
		return "great"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// ParseQuality parses "fast", "good" or "great", ignoring case
func ParseQuality(name string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fast":
		return QualityFast, nil
	case "good":
		return QualityGood, nil
	case "great":
		return QualityGreat, nil
	default:
		return QualityFast, fmt.Errorf("%w: %q (expected fast, good or great)", ErrUnknownQuality, name)
	}
}
