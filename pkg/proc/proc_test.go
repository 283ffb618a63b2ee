package proc_test

import (
	"testing"

	"github.com/werdl/rustnix/pkg/proc"
)

func TestFromRaw(t *testing.T) {
	known := []proc.ExitCode{
		proc.Success, proc.Failure, proc.UsageError, proc.DataError,
		proc.OpenError, proc.ReadError, proc.ExecError, proc.PageFaultError,
	}
	for _, c := range known {
		if got := proc.FromRaw(uint8(c)); got != c {
			t.Errorf("FromRaw(%d) = %v, want %v", uint8(c), got, c)
		}
	}
	// Anything off the table collapses to ShellExit.
	for _, raw := range []uint8{2, 63, 199, 254} {
		if got := proc.FromRaw(raw); got != proc.ShellExit {
			t.Errorf("FromRaw(%d) = %v, want ShellExit", raw, got)
		}
	}
}

func TestString(t *testing.T) {
	if got := proc.Success.String(); got != "success" {
		t.Errorf("Success.String() = %q", got)
	}
	if got := proc.PageFaultError.String(); got != "page fault" {
		t.Errorf("PageFaultError.String() = %q", got)
	}
}
