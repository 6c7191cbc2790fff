package serial

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	if cfg.Device != "/dev/ttyACM0" || cfg.Baud != 115200 || cfg.ReadTimeout != DefaultReadTimeout {
		t.Errorf("Unexpected default config %+v", cfg)
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	if _, err := Open(nil); err == nil {
		t.Error("nil config should fail")
	}

	cfg := DefaultConfig("/dev/null")
	cfg.Baud = 0
	if _, err := Open(cfg); !errors.Is(err, ErrBadBaud) {
		t.Errorf("Expected ErrBadBaud, got %v", err)
	}
}
