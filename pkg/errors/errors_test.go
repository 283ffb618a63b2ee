package errors_test

import (
	"testing"

	"github.com/werdl/rustnix/pkg/errors"
)

func TestErrnoValues(t *testing.T) {
	// Spot checks against the kernel's table; the full mapping is pinned by
	// tools/tablecheck and pkg/sys.
	if errors.EPERM != 1 || errors.EBADF != 9 || errors.ENOSYS != 88 || errors.EOVERFLOW != 139 {
		t.Error("errno constants drifted from the kernel's table")
	}
}

func TestErrnoError(t *testing.T) {
	if got := errors.EBADF.Error(); got != "bad file number" {
		t.Errorf("EBADF.Error() = %q", got)
	}
	if got := errors.Errno(77).Error(); got != "errno 77" {
		t.Errorf("unknown errno message = %q", got)
	}
}

func TestOk(t *testing.T) {
	if !errors.Errno(0).Ok() {
		t.Error("zero Errno should report Ok")
	}
	if errors.EIO.Ok() {
		t.Error("EIO should not report Ok")
	}
}
