// Package rustnix is the friendly face of the syscall layer.
//
// The raw wrappers in pkg/sys keep the kernel's two-step error protocol: a
// negative result, then a separate get_errno read that other goroutines can
// race. This package pairs the two steps under one mutex so each call here
// returns a reliable error value. Callers who want the raw protocol use
// pkg/sys directly.
package rustnix

import (
	"sync"
	"time"

	"github.com/werdl/rustnix/pkg/errors"
	"github.com/werdl/rustnix/pkg/proc"
	"github.com/werdl/rustnix/pkg/sys"
)

// callMu serializes fallible-call-then-read-error sequences. Raw pkg/sys
// calls issued concurrently can still clobber the error slot; this only
// protects callers that stay inside this package.
var callMu sync.Mutex

func wrap(n int) (int, error) {
	if n >= 0 {
		return n, nil
	}
	e := sys.LastError()
	if e.Ok() {
		e = errors.EIO
	}
	return 0, e
}

// Read reads from fd into p.
func Read(fd int, p []byte) (int, error) {
	callMu.Lock()
	defer callMu.Unlock()
	return wrap(sys.Read(fd, p))
}

// Write writes p to fd.
func Write(fd int, p []byte) (int, error) {
	callMu.Lock()
	defer callMu.Unlock()
	return wrap(sys.Write(fd, p))
}

// Open opens path and returns a file descriptor.
func Open(path string, flags sys.Flags) (int, error) {
	callMu.Lock()
	defer callMu.Unlock()
	return wrap(sys.Open(path, flags))
}

// Close closes fd.
func Close(fd int) error {
	callMu.Lock()
	defer callMu.Unlock()
	_, err := wrap(sys.Close(fd))
	return err
}

// Flush flushes pending writes on fd.
func Flush(fd int) error {
	callMu.Lock()
	defer callMu.Unlock()
	_, err := wrap(sys.Flush(fd))
	return err
}

// Seek moves fd to pos and returns the new position.
func Seek(fd, pos int) (int, error) {
	callMu.Lock()
	defer callMu.Unlock()
	return wrap(sys.Seek(fd, pos))
}

// Poll reports whether fd is ready for ev.
func Poll(fd int, ev sys.Event) (bool, error) {
	callMu.Lock()
	defer callMu.Unlock()
	n, err := wrap(sys.Poll(fd, ev))
	return n > 0, err
}

// Alloc acquires size bytes aligned to align from the kernel.
func Alloc(size, align uintptr) (uintptr, error) {
	callMu.Lock()
	defer callMu.Unlock()
	ptr := sys.Alloc(size, align)
	if ptr == 0 {
		return 0, errors.ENOMEM
	}
	return ptr, nil
}

// Free releases an allocation. The triple must match the Alloc call.
func Free(ptr, size, align uintptr) {
	sys.Free(ptr, size, align)
}

// Sleep yields the processor for at least d.
func Sleep(d time.Duration) {
	sys.Sleep(d)
}

// BootTime returns how long the kernel has been up.
func BootTime() time.Duration {
	return time.Duration(sys.BootTime())
}

// Now returns the kernel's wall clock, at second granularity.
func Now() time.Time {
	return time.Unix(int64(sys.UnixTime()), 0)
}

// Process conveniences from pkg/proc.
var (
	Spawn = proc.Spawn
	Exit  = proc.Exit
)
