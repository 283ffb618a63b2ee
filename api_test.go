package rustnix_test

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"

	rustnix "github.com/werdl/rustnix"
	"github.com/werdl/rustnix/pkg/errors"
	"github.com/werdl/rustnix/pkg/kernel"
	"github.com/werdl/rustnix/pkg/sys"
)

func boot(t *testing.T) *bytes.Buffer {
	t.Helper()
	out := new(bytes.Buffer)
	k := kernel.New(kernel.Config{
		Log:    hclog.NewNullLogger(),
		Stdin:  bytes.NewReader(nil),
		Stdout: out,
		Stderr: new(bytes.Buffer),
	})
	prev := sys.Bind(k)
	t.Cleanup(func() { sys.Bind(prev) })
	return out
}

func TestWriteRead(t *testing.T) {
	out := boot(t)

	n, err := rustnix.Write(1, []byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if out.String() != "hello" {
		t.Errorf("stdout captured %q", out.String())
	}

	fd, err := rustnix.Open("/dev/zero", sys.FlagRead)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	buf := []byte{1, 2, 3}
	if n, err := rustnix.Read(fd, buf); err != nil || n != 3 {
		t.Fatalf("Read = %d, %v", n, err)
	}
}

// Failures surface as the kernel's errno, read atomically with the call.
func TestErrorsCarryErrno(t *testing.T) {
	boot(t)

	_, err := rustnix.Open("/dev/teapot", sys.FlagRead)
	if err != errors.ENOENT {
		t.Errorf("Open error = %v, want ENOENT", err)
	}
	if err := rustnix.Close(42); err != errors.EBADF {
		t.Errorf("Close error = %v, want EBADF", err)
	}
}

func TestHeap(t *testing.T) {
	boot(t)

	ptr, err := rustnix.Alloc(256, 8)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	rustnix.Free(ptr, 256, 8)

	if _, err := rustnix.Alloc(0, 0); err != errors.ENOMEM {
		t.Errorf("Alloc(0, 0) error = %v, want ENOMEM", err)
	}
}

func TestPoll(t *testing.T) {
	boot(t)

	ready, err := rustnix.Poll(4, sys.EventRead)
	if err != nil || !ready {
		t.Errorf("Poll(/dev/zero) = %t, %v", ready, err)
	}
	if _, err := rustnix.Poll(4, sys.Event(7)); err != errors.EINVAL {
		t.Errorf("Poll with bad event error = %v, want EINVAL", err)
	}
}

func TestClocks(t *testing.T) {
	boot(t)

	if rustnix.BootTime() <= 0 {
		t.Error("BootTime not positive")
	}
	if rustnix.Now().IsZero() {
		t.Error("Now returned the zero time")
	}
}
