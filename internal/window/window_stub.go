//go:build !ebiten

package window

import "github.com/san-kum/digirain/internal/rain"

// Run reports that the window host is not compiled in.
func Run(*rain.Engine, Options) error {
	return ErrUnavailable
}
