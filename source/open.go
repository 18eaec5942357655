package source

import (
	"context"
	"fmt"
	"strings"
)

type Kind string

const (
	KindLibAV  = Kind("libav")
	KindOpenCV = Kind("opencv")
)

// Open opens the given file or URL with the backend of the given kind;
// an empty kind means libav.
func Open(
	ctx context.Context,
	kind Kind,
	url string,
	cfg LibAVConfig,
) (Source, error) {
	switch Kind(strings.ToLower(string(kind))) {
	case "", KindLibAV:
		s, err := NewLibAV(ctx, url, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindOpenCV:
		return newOpenCV(ctx, url)
	default:
		return nil, fmt.Errorf("unknown source kind '%s'", kind)
	}
}
