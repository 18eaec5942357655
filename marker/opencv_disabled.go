//go:build !with_cv
// +build !with_cv

package marker

import (
	"fmt"
)

func newOpenCV(Preprocess) (Decoder, error) {
	return nil, fmt.Errorf("compiled without OpenCV support, rebuild with '-tags with_cv'")
}
