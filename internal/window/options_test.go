package window

import "testing"

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.FPS != 30 || o.Cell != 18 {
		t.Errorf("unexpected defaults: %+v", o)
	}

	o = Options{FPS: 60, Cell: 10}.withDefaults()
	if o.FPS != 60 || o.Cell != 10 {
		t.Errorf("explicit values overwritten: %+v", o)
	}
}
