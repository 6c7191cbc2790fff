package periphio

import (
	"errors"
	"testing"

	"frontpanel/core"

	"periph.io/x/conn/v3/gpio"
)

type fakePin struct {
	out    bool
	level  gpio.Level
	pull   gpio.Pull
	input  gpio.Level
	outErr error
}

func (p *fakePin) In(pull gpio.Pull, edge gpio.Edge) error {
	p.out = false
	p.pull = pull
	return nil
}

func (p *fakePin) Read() gpio.Level { return p.input }

func (p *fakePin) Out(l gpio.Level) error {
	if p.outErr != nil {
		return p.outErr
	}
	p.out = true
	p.level = l
	return nil
}

func newFakeDriver(n int) (*Driver, []*fakePin) {
	pins := make([]*fakePin, n)
	for i := range pins {
		pins[i] = &fakePin{}
	}
	d := New(func(pin core.GPIOPin) Pin {
		if int(pin) >= n {
			return nil
		}
		return pins[pin]
	})
	return d, pins
}

func TestOutput(t *testing.T) {
	d, pins := newFakeDriver(4)

	if err := d.ConfigureOutput(2); err != nil {
		t.Fatalf("ConfigureOutput: %v", err)
	}
	if !pins[2].out || pins[2].level != gpio.Low {
		t.Errorf("pin 2 out=%v level=%v, want low output", pins[2].out, pins[2].level)
	}

	if err := d.SetPin(2, true); err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	if pins[2].level != gpio.High {
		t.Error("pin 2 was not driven high")
	}
	if v, _ := d.GetPin(2); !v {
		t.Error("GetPin(2) = false, want true")
	}
}

func TestInputPulls(t *testing.T) {
	tests := []struct {
		pull core.Pull
		want gpio.Pull
	}{
		{core.PullNone, gpio.Float},
		{core.PullUp, gpio.PullUp},
		{core.PullDown, gpio.PullDown},
	}
	for _, tt := range tests {
		d, pins := newFakeDriver(1)
		if err := d.ConfigureInput(0, tt.pull); err != nil {
			t.Fatalf("ConfigureInput(%v): %v", tt.pull, err)
		}
		if pins[0].pull != tt.want {
			t.Errorf("pull %v mapped to %v, want %v", tt.pull, pins[0].pull, tt.want)
		}
	}
}

func TestInputRead(t *testing.T) {
	d, pins := newFakeDriver(2)
	if err := d.ConfigureInput(1, core.PullUp); err != nil {
		t.Fatalf("ConfigureInput: %v", err)
	}

	pins[1].input = gpio.High
	if !d.ReadPin(1) {
		t.Error("ReadPin(1) = false, want true")
	}
	pins[1].input = gpio.Low
	if d.ReadPin(1) {
		t.Error("ReadPin(1) = true, want false")
	}
	if err := d.SetPin(1, true); !errors.Is(err, core.ErrInvalidPin) {
		t.Errorf("SetPin on input err = %v, want ErrInvalidPin", err)
	}
}

func TestUnknownPin(t *testing.T) {
	d, _ := newFakeDriver(2)

	if err := d.ConfigureOutput(7); !errors.Is(err, core.ErrInvalidPin) {
		t.Errorf("ConfigureOutput(7) err = %v, want ErrInvalidPin", err)
	}
	if _, err := d.GetPin(0); !errors.Is(err, core.ErrInvalidPin) {
		t.Errorf("GetPin on unconfigured err = %v, want ErrInvalidPin", err)
	}
	if d.ReadPin(0) {
		t.Error("ReadPin on unconfigured = true")
	}
}

func TestOutputError(t *testing.T) {
	d, pins := newFakeDriver(1)
	if err := d.ConfigureOutput(0); err != nil {
		t.Fatalf("ConfigureOutput: %v", err)
	}

	fail := errors.New("sysfs write failed")
	pins[0].outErr = fail
	if err := d.SetPin(0, true); !errors.Is(err, fail) {
		t.Errorf("SetPin err = %v, want %v", err, fail)
	}
	if v, _ := d.GetPin(0); v {
		t.Error("failed write changed the driven level")
	}
}
