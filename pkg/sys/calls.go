package sys

import (
	"runtime"
	"time"
	"unsafe"

	"github.com/werdl/rustnix/pkg/errors"
)

// Flags is the 8-bit flag word accompanying open. Bit meanings belong to the
// kernel; these mirror its FileFlags table.
type Flags uint8

const (
	FlagRead Flags = 1 << iota
	FlagWrite
	FlagCreate
	FlagAppend
	FlagTruncate
)

// Event selects what poll should test a file descriptor for.
type Event uintptr

const (
	EventRead  Event = 1
	EventWrite Event = 2
)

// StopKind selects what stop does to the machine.
type StopKind uintptr

const (
	StopShutdown StopKind = 0
	StopReboot   StopKind = 1
)

// stringRef is the kernel's view of a string: a (pointer, length) pair. Spawn
// passes its argument vector as an array of these; the layout must match the
// kernel's unmarshalling exactly.
type stringRef struct {
	ptr uintptr
	len uintptr
}

// bufPtr and strPtr are the only places a pointer becomes a word. Callers
// must keep the backing memory alive across the trap.
func bufPtr(p []byte) uintptr {
	if len(p) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&p[0]))
}

func strPtr(s string) uintptr {
	if len(s) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.StringData(s)))
}

// Read reads up to len(p) bytes from fd into p. Returns the byte count, or a
// negative value with the cause available via LastError.
func Read(fd int, p []byte) int {
	r := Syscall3(SYS_READ, uintptr(fd), bufPtr(p), uintptr(len(p)))
	runtime.KeepAlive(p)
	return int(r)
}

// Write writes len(p) bytes from p to fd. Returns the byte count, or a
// negative value with the cause available via LastError.
func Write(fd int, p []byte) int {
	r := Syscall3(SYS_WRITE, uintptr(fd), bufPtr(p), uintptr(len(p)))
	runtime.KeepAlive(p)
	return int(r)
}

// Open opens path and returns a file descriptor, or a negative value. The
// path is passed as pointer and length; the kernel assumes no terminator.
func Open(path string, flags Flags) int {
	r := Syscall3(SYS_OPEN, strPtr(path), uintptr(len(path)), uintptr(flags))
	runtime.KeepAlive(path)
	return int(r)
}

// Close closes fd.
func Close(fd int) int {
	return int(Syscall1(SYS_CLOSE, uintptr(fd)))
}

// Flush flushes pending writes on fd.
func Flush(fd int) int {
	return int(Syscall1(SYS_FLUSH, uintptr(fd)))
}

// Exit terminates the calling process with code. It never returns: should the
// kernel ever come back from the trap, the calling goroutine is halted rather
// than allowed to run on past its own exit.
func Exit(code uint8) {
	Syscall1(SYS_EXIT, uintptr(code))
	halt()
}

// Sleep yields the processor for at least d.
func Sleep(d time.Duration) int {
	return int(Syscall1(SYS_SLEEP, uintptr(d.Nanoseconds())))
}

// Wait busy-waits in the kernel for d. Unlike Sleep it does not yield.
func Wait(d time.Duration) int {
	return int(Syscall1(SYS_WAIT, uintptr(d.Nanoseconds())))
}

// GetPID returns the process ID.
func GetPID() int {
	return int(Syscall0(SYS_GETPID))
}

// Spawn executes the program at path with the given argument vector and
// returns the raw status word. The arguments are marshalled as an array of
// (pointer, length) pairs, the shape the kernel expects.
func Spawn(path string, args []string) uintptr {
	refs := make([]stringRef, len(args))
	for i, a := range args {
		refs[i] = stringRef{ptr: strPtr(a), len: uintptr(len(a))}
	}
	var argv uintptr
	if len(refs) > 0 {
		argv = uintptr(unsafe.Pointer(&refs[0]))
	}
	r := Syscall4(SYS_SPAWN, strPtr(path), uintptr(len(path)), argv, uintptr(len(args)))
	runtime.KeepAlive(path)
	runtime.KeepAlive(args)
	runtime.KeepAlive(refs)
	return r
}

// Fork forks the current process.
func Fork() int {
	return int(Syscall0(SYS_FORK))
}

// GetTID returns the thread ID.
func GetTID() int {
	return int(Syscall0(SYS_GETTID))
}

// Stop shuts down or reboots the machine.
func Stop(kind StopKind) int {
	return int(Syscall1(SYS_STOP, uintptr(kind)))
}

// WaitPID waits for the child pid to exit. The exit status is written through
// status if it is non-nil.
func WaitPID(pid int, status *uintptr) int {
	r := Syscall2(SYS_WAITPID, uintptr(pid), uintptr(unsafe.Pointer(status)))
	runtime.KeepAlive(status)
	return int(r)
}

// Connect connects the socket fd to the address in addr.
func Connect(fd int, addr []byte) int {
	r := Syscall3(SYS_CONNECT, uintptr(fd), bufPtr(addr), uintptr(len(addr)))
	runtime.KeepAlive(addr)
	return int(r)
}

// Accept accepts a connection on the socket fd, writing the peer address
// into addr.
func Accept(fd int, addr []byte) int {
	r := Syscall3(SYS_ACCEPT, uintptr(fd), bufPtr(addr), uintptr(len(addr)))
	runtime.KeepAlive(addr)
	return int(r)
}

// Listen marks the socket fd as accepting connections.
func Listen(fd, backlog int) int {
	return int(Syscall2(SYS_LISTEN, uintptr(fd), uintptr(backlog)))
}

// Alloc asks the kernel for size bytes aligned to align and returns the raw
// pointer word, zero on failure. Size and alignment legality is kernel
// policy; nothing is validated here.
func Alloc(size, align uintptr) uintptr {
	return Syscall2(SYS_ALLOC, size, align)
}

// Free releases an allocation. The triple must be the one Alloc was called
// with; a mismatch is undefined at the kernel level and the wrapper forwards
// it verbatim, checking nothing.
func Free(ptr, size, align uintptr) {
	Syscall3(SYS_FREE, ptr, size, align)
}

// Kind returns the kind of the current process.
func Kind() uintptr {
	return Syscall0(SYS_KIND)
}

// LastError reads the kernel's last-error slot. The slot is global to the
// kernel: a syscall issued by another goroutine between a failing call and
// this read will overwrite it. Serialize the pair if the cause matters.
func LastError() errors.Errno {
	return errors.Errno(Syscall0(SYS_GETERRNO))
}

// Poll reports whether fd is ready for the given event: 1 if ready, 0 if
// not, negative on error.
func Poll(fd int, ev Event) int {
	return int(Syscall2(SYS_POLL, uintptr(fd), uintptr(ev)))
}

// BootTime returns the number of nanoseconds since the kernel booted.
func BootTime() uint64 {
	return uint64(Syscall0(SYS_BOOTTIME))
}

// UnixTime returns the number of seconds since 1970-01-01T00:00:00Z.
func UnixTime() uint64 {
	return uint64(Syscall0(SYS_TIME))
}

// Seek moves the position of fd to pos and returns the new position, or a
// negative value on error.
func Seek(fd, pos int) int {
	return int(Syscall2(SYS_SEEK, uintptr(fd), uintptr(pos)))
}
