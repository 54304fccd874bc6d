package universe

import (
	"errors"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(o *Options)
		valid  bool
	}{
		{"defaults", func(o *Options) {}, true},
		{"zero width", func(o *Options) { o.Width = 0 }, false},
		{"negative height", func(o *Options) { o.Height = -3 }, false},
		{"zero min interval", func(o *Options) { o.MinInterval = 0 }, false},
		{"inverted bounds", func(o *Options) { o.MinInterval, o.MaxInterval = time.Second, time.Millisecond }, false},
		{"interval below min", func(o *Options) { o.Interval = time.Millisecond }, false},
		{"interval above max", func(o *Options) { o.Interval = time.Minute }, false},
		{"interval at the bound", func(o *Options) { o.Interval = o.MaxInterval }, true},
		{"zero step", func(o *Options) { o.IntervalStep = 0 }, false},
		{"zero input timeout", func(o *Options) { o.InputTimeout = 0 }, false},
		{"density above one", func(o *Options) { o.Density = 1.5 }, false},
		{"negative density", func(o *Options) { o.Density = -0.1 }, false},
		{"1x1 grid", func(o *Options) { o.Width, o.Height = 1, 1 }, true},
		{"narrow torus", func(o *Options) { o.Width, o.Height, o.Wrap = 3, 1, true }, false},
		{"3x3 torus", func(o *Options) { o.Width, o.Height, o.Wrap = 3, 3, true }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultUniverseOptions
			tt.modify(&o)
			err := o.Validate()
			if tt.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidOptions) {
				t.Fatalf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestClampInterval(t *testing.T) {
	o := DefaultUniverseOptions
	if d := o.ClampInterval(time.Nanosecond); d != o.MinInterval {
		t.Errorf("got %v, expected %v", d, o.MinInterval)
	}
	if d := o.ClampInterval(time.Hour); d != o.MaxInterval {
		t.Errorf("got %v, expected %v", d, o.MaxInterval)
	}
	if d := o.ClampInterval(time.Second); d != time.Second {
		t.Errorf("got %v, expected 1s", d)
	}
}

func TestOptionsTopology(t *testing.T) {
	o := DefaultUniverseOptions
	if o.Topology() != Bounded {
		t.Fatal("default topology is not bounded")
	}
	o.Wrap = true
	if o.Topology() != Torus {
		t.Fatal("wrap does not select torus")
	}
}
