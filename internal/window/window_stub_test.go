//go:build !ebiten

package window

import (
	"errors"
	"testing"
)

func TestRunWithoutTag(t *testing.T) {
	if err := Run(nil, Options{}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
