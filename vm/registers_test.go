package vm

import "testing"

func TestZeroRegisterAlwaysReadsZero(t *testing.T) {
	r := NewRegisterFile()
	r.gpr[ZERO] = 0xFFFFFFFF // simulate a stray internal write

	got, err := r.Get(ZERO)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("Get(ZERO) = 0x%X, want 0", got)
	}
}

func TestZeroRegisterRejectsWrite(t *testing.T) {
	r := NewRegisterFile()
	err := r.Set(ZERO, 42)
	if err == nil {
		t.Fatal("expected error writing to $zero")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != IllegalRegisterAccess {
		t.Errorf("expected IllegalRegisterAccess, got %v", err)
	}
}

func TestRegisterOutOfRange(t *testing.T) {
	r := NewRegisterFile()
	if _, err := r.Get(32); err == nil {
		t.Error("expected error reading register 32")
	}
	if err := r.Set(-1, 0); err == nil {
		t.Error("expected error writing register -1")
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	r := NewRegisterFile()
	if err := r.Set(T0, 0x12345678); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := r.Get(T0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x12345678 {
		t.Errorf("Get(T0) = 0x%X, want 0x12345678", got)
	}
}

func TestHILOAccumulators(t *testing.T) {
	r := NewRegisterFile()
	r.SetHI(1)
	r.SetLO(2)
	if r.HI() != 1 || r.LO() != 2 {
		t.Errorf("HI/LO = %d/%d, want 1/2", r.HI(), r.LO())
	}
}

func TestProgramCounter(t *testing.T) {
	r := NewRegisterFile()
	r.SetPC(0x00400000)
	if r.PC() != 0x00400000 {
		t.Errorf("PC() = 0x%X, want 0x00400000", r.PC())
	}
}
