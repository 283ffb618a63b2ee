//go:build !rustnix

package sys

import (
	"runtime"
	"sync"
)

// Kernel receives traps on hosted builds. Exactly the arguments the caller
// passed are forwarded, in declared order; the returned word goes back to the
// caller as if it had been read out of the result register.
type Kernel interface {
	Trap(n Number, args []uintptr) uintptr
}

// KernelFunc adapts a function to the Kernel interface.
type KernelFunc func(n Number, args []uintptr) uintptr

// Trap implements Kernel.
func (f KernelFunc) Trap(n Number, args []uintptr) uintptr { return f(n, args) }

var (
	kernMu sync.RWMutex
	kern   Kernel
)

// Bind installs k as the kernel behind the trap primitives and returns the
// previously bound kernel (nil if none). Only meaningful on hosted builds; a
// rustnix binary always traps into the real kernel.
func Bind(k Kernel) Kernel {
	kernMu.Lock()
	defer kernMu.Unlock()
	prev := kern
	kern = k
	return prev
}

func bound() Kernel {
	kernMu.RLock()
	defer kernMu.RUnlock()
	if kern == nil {
		panic("sys: no kernel bound")
	}
	return kern
}

func trap0(n uintptr) uintptr {
	return bound().Trap(Number(n), nil)
}

func trap1(n, a1 uintptr) uintptr {
	return bound().Trap(Number(n), []uintptr{a1})
}

func trap2(n, a1, a2 uintptr) uintptr {
	return bound().Trap(Number(n), []uintptr{a1, a2})
}

func trap3(n, a1, a2, a3 uintptr) uintptr {
	return bound().Trap(Number(n), []uintptr{a1, a2, a3})
}

func trap4(n, a1, a2, a3, a4 uintptr) uintptr {
	return bound().Trap(Number(n), []uintptr{a1, a2, a3, a4})
}

// halt never returns. On hosted builds the calling goroutine is torn down
// cleanly so tests can exercise Exit without wedging a thread; the stray
// select guards against Goexit somehow coming back.
func halt() {
	runtime.Goexit()
	select {}
}
