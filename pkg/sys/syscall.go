// Package sys is the userland half of the kernel's syscall ABI.
//
// It has two layers. The trap primitives (trap0 through trap4, one per
// argument count) each perform a single kernel entry and hand back the raw
// word the kernel left in the result register; they carry no type
// information. The typed wrappers (Read, Write, Open, ...) pick the primitive
// matching their service's arity, pack typed arguments into machine words in
// the kernel's unmarshalling order, and reinterpret the raw result into the
// service's natural return type.
//
// On a rustnix build the primitives are assembly stubs issuing INT 0x80 with
// the number in AX and arguments in DI, SI, DX and R8. On every other build
// they route through a Kernel bound with Bind, which is how tests and the
// in-process kernel in pkg/kernel stand in for the real thing.
//
// Most services signal failure by returning a word that is negative when
// reinterpreted as signed; the cause is retrievable via LastError. The two
// steps are not atomic: another goroutine's syscall can overwrite the error
// slot in between. Callers who need a reliable cause code must serialize the
// pair themselves (the root rustnix package does exactly that).
package sys

// Syscall0 performs the syscall n with no arguments and returns the raw
// result word. Most callers want the typed wrappers instead.
func Syscall0(n Number) uintptr {
	return trap0(uintptr(n))
}

// Syscall1 performs the syscall n with one argument.
func Syscall1(n Number, a1 uintptr) uintptr {
	return trap1(uintptr(n), a1)
}

// Syscall2 performs the syscall n with two arguments.
func Syscall2(n Number, a1, a2 uintptr) uintptr {
	return trap2(uintptr(n), a1, a2)
}

// Syscall3 performs the syscall n with three arguments.
func Syscall3(n Number, a1, a2, a3 uintptr) uintptr {
	return trap3(uintptr(n), a1, a2, a3)
}

// Syscall4 performs the syscall n with four arguments. Four is the limit of
// the register convention; anything wider needs a pointer to a packed
// argument block passed as a single word.
func Syscall4(n Number, a1, a2, a3, a4 uintptr) uintptr {
	return trap4(uintptr(n), a1, a2, a3, a4)
}
