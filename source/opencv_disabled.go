//go:build !with_cv
// +build !with_cv

package source

import (
	"context"
	"fmt"
)

func newOpenCV(_ context.Context, url string) (Source, error) {
	return nil, ErrOpen{URL: url, Err: fmt.Errorf("compiled without OpenCV support, rebuild with '-tags with_cv'")}
}
