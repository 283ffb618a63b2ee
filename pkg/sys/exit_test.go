package sys_test

import (
	"testing"

	"github.com/werdl/rustnix/pkg/sys"
)

// Exit must never hand control back to its caller, whatever word the kernel
// returns from the trap — including zero and the -1 pattern.
func TestExitNeverReturns(t *testing.T) {
	for _, raw := range []uintptr{0, 1, 42, ^uintptr(0)} {
		var trapped bool
		bind(t, sys.KernelFunc(func(n sys.Number, args []uintptr) uintptr {
			if n == sys.SYS_EXIT {
				trapped = true
			}
			return raw
		}))

		returned := false
		done := make(chan struct{})
		go func() {
			defer close(done)
			sys.Exit(3)
			returned = true // must be unreachable
		}()
		<-done

		if !trapped {
			t.Fatalf("raw %#x: exit never trapped", raw)
		}
		if returned {
			t.Fatalf("raw %#x: Exit returned control to its caller", raw)
		}
	}
}
