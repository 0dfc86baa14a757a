package window

import "errors"

// ErrUnavailable is returned when the binary was built without the ebiten tag.
var ErrUnavailable = errors.New("window host requires building with the 'ebiten' tag")

type Options struct {
	FPS   int
	Theme string
	Seed  int64
	// Cell is the pixel size of one grid cell.
	Cell int
}

func (o Options) withDefaults() Options {
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.Cell <= 0 {
		o.Cell = 18
	}
	return o
}
