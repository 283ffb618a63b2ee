//go:build rustnix && amd64

package sys

// The trap primitives live in trap_rustnix_amd64.s. Each performs exactly one
// INT 0x80 with the syscall number in AX and arguments in DI, SI, DX and R8,
// and returns whatever the kernel left in AX. R8 is outside the minimal
// calling sequence and is loaded explicitly by the four-argument stub.

//go:noescape
func trap0(n uintptr) uintptr

//go:noescape
func trap1(n, a1 uintptr) uintptr

//go:noescape
func trap2(n, a1, a2 uintptr) uintptr

//go:noescape
func trap3(n, a1, a2, a3 uintptr) uintptr

//go:noescape
func trap4(n, a1, a2, a3, a4 uintptr) uintptr

// halt never returns. Used by Exit after the trap: if the kernel ever did
// return from exit, spinning here is safer than letting the caller run on.
func halt() {
	for {
	}
}
