package fuelscript

import "testing"

func TestLoadReadsAllFields(t *testing.T) {
	p, err := Load(`return {
		base = 1,
		instance = 2,
		load = 3,
		store = 4,
		call = 5,
		copy_per_register = 6,
	}`)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Base() != 1 || p.Instance() != 2 || p.Load() != 3 || p.Store() != 4 || p.Call() != 5 || p.CopyPerRegister() != 6 {
		t.Fatalf("fields = %+v", p)
	}
}

func TestLoadMissingFieldsDefaultToZero(t *testing.T) {
	p, err := Load(`return { base = 10 }`)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Base() != 10 {
		t.Fatalf("Base() = %d, want 10", p.Base())
	}
	if p.Instance() != 0 || p.Load() != 0 || p.Store() != 0 || p.Call() != 0 || p.CopyPerRegister() != 0 {
		t.Fatalf("unset fields should default to zero, got %+v", p)
	}
}

func TestLoadNegativeFieldClampsToZero(t *testing.T) {
	p, err := Load(`return { base = -5 }`)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Base() != 0 {
		t.Fatalf("Base() = %d, want 0 for a negative cost", p.Base())
	}
}

func TestLoadRejectsScriptNotReturningATable(t *testing.T) {
	if _, err := Load(`return 42`); err == nil {
		t.Fatal("expected an error when the script does not return a table")
	}
}

func TestLoadRejectsInvalidScript(t *testing.T) {
	if _, err := Load(`this is not lua`); err == nil {
		t.Fatal("expected an error for a script that fails to evaluate")
	}
}
