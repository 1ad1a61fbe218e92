package arbor

import (
	"errors"
	"sync"
	"testing"
)

func TestRegister(t *testing.T) {
	Reset()
	defer Reset()

	d := New("people")
	if err := Register(d); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	got, ok := Lookup("people")
	if !ok || got != d {
		t.Error("Lookup() should return the registered definition")
	}

	if err := Register(New("people")); !errors.Is(err, ErrDuplicateDefinition) {
		t.Errorf("Register(duplicate) error = %v, want ErrDuplicateDefinition", err)
	}
}

func TestUse(t *testing.T) {
	Reset()
	defer Reset()

	d := New("dogs")
	if err := Register(d); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	got, err := Use("dogs")
	if err != nil {
		t.Fatalf("Use() error: %v", err)
	}
	if got != d {
		t.Error("Use() should return the registered definition")
	}

	if _, err := Use("cats"); !errors.Is(err, ErrUnknownDefinition) {
		t.Errorf("Use(unknown) error = %v, want ErrUnknownDefinition", err)
	}
}

func TestReset(t *testing.T) {
	Reset()

	if err := Register(New("temp")); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	Reset()

	if _, ok := Lookup("temp"); ok {
		t.Error("Reset() should clear the registry")
	}
}

func TestRegister_Concurrent(t *testing.T) {
	Reset()
	defer Reset()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if Register(New("shared")) == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 1 {
		t.Errorf("%d registrations succeeded, want 1", succeeded)
	}
}
