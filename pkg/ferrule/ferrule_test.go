package ferrule

import (
	"testing"

	"github.com/tmarlowe/ferrule/pkg/errors"
	"github.com/tmarlowe/ferrule/pkg/options"
)

func TestOpenSetGetRemoveCloseReopen(t *testing.T) {
	dir := t.TempDir()

	inst, err := Open(options.WithDataDir(dir), options.WithAdvisoryLock(false))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := inst.Set("greeting", "hello"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := inst.Get("greeting")
	if err != nil || !ok || v != "hello" {
		t.Fatalf("Get: v=%q ok=%v err=%v", v, ok, err)
	}

	if err := inst.Remove("greeting"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := inst.Remove("greeting"); !errors.IsKeyNotFound(err) {
		t.Fatalf("second Remove: got %v, want KeyNotFound", err)
	}

	if err := inst.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	inst2, err := Open(options.WithDataDir(dir), options.WithAdvisoryLock(false))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer inst2.Close()

	_, ok, err = inst2.Get("greeting")
	if err != nil || ok {
		t.Fatalf("Get after reopen: ok=%v err=%v", ok, err)
	}
}

func TestAdvisoryLockRejectsSecondOpen(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(options.WithDataDir(dir))
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	defer first.Close()

	_, err = Open(options.WithDataDir(dir))
	if err == nil {
		t.Fatal("second Open against a locked directory unexpectedly succeeded")
	}
	if got := errors.GetErrorCode(err); got != errors.ErrorCodeLocked {
		t.Fatalf("second Open error code: got %q, want %q", got, errors.ErrorCodeLocked)
	}
}
