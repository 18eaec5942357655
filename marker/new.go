package marker

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindZXing  = Kind("zxing")
	KindOpenCV = Kind("opencv")
)

// New returns a Decoder of the given kind; an empty kind means ZXing.
func New(kind Kind, preprocess Preprocess) (Decoder, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case "", KindZXing:
		return NewZXing(preprocess), nil
	case KindOpenCV:
		return newOpenCV(preprocess)
	default:
		return nil, fmt.Errorf("unknown marker decoder kind '%s'", kind)
	}
}
