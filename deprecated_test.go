package corewait

import "testing"

func TestPLockBehavesAsBinarySemaphore(t *testing.T) {
	DeprecationLogger = nil
	defer func() { DeprecationLogger = nil }()

	p := NewPLock(1)
	if !p.TryAcquire() {
		t.Fatal("expected acquire to succeed")
	}
	if err := p.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestBLockBehavesAsBoundedBinarySemaphore(t *testing.T) {
	DeprecationLogger = nil
	defer func() { DeprecationLogger = nil }()

	b := NewBLock(1)
	if err := b.Release(); err == nil {
		t.Fatal("expected overflow error releasing an already-unlocked BLock")
	}
}

func TestDeprecationLoggerInvoked(t *testing.T) {
	var called bool
	DeprecationLogger = func(format string, args ...any) {
		called = true
	}
	defer func() { DeprecationLogger = nil }()

	NewPLock(0)
	if !called {
		t.Fatal("expected DeprecationLogger to be invoked")
	}
}
