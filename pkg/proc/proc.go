// Package proc carries the process-side conventions built on the raw syscall
// layer: exit codes and the spawn/exit veneers.
package proc

import "github.com/werdl/rustnix/pkg/sys"

// ExitCode is the 8-bit status a process hands back through exit and spawn.
type ExitCode uint8

const (
	Success        ExitCode = 0
	Failure        ExitCode = 1
	UsageError     ExitCode = 64
	DataError      ExitCode = 65
	OpenError      ExitCode = 128
	ReadError      ExitCode = 129
	ExecError      ExitCode = 130
	PageFaultError ExitCode = 200
	ShellExit      ExitCode = 255
)

// FromRaw coerces a raw status byte into a known exit code. Anything outside
// the table collapses to ShellExit, matching the kernel's convention.
func FromRaw(code uint8) ExitCode {
	switch c := ExitCode(code); c {
	case Success, Failure, UsageError, DataError, OpenError, ReadError, ExecError, PageFaultError:
		return c
	default:
		return ShellExit
	}
}

func (c ExitCode) String() string {
	switch c {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case UsageError:
		return "usage error"
	case DataError:
		return "data error"
	case OpenError:
		return "open error"
	case ReadError:
		return "read error"
	case ExecError:
		return "exec error"
	case PageFaultError:
		return "page fault"
	case ShellExit:
		return "shell exit"
	}
	return "unknown"
}

// Spawn runs the program at path and blocks until it exits, returning the
// child's exit code.
func Spawn(path string, args ...string) ExitCode {
	return FromRaw(uint8(sys.Spawn(path, args)))
}

// Exit terminates the calling process. Never returns.
func Exit(code ExitCode) {
	sys.Exit(uint8(code))
}
