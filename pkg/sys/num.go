package sys

// Number identifies a kernel service. The mapping below is the wire contract
// between this library and the kernel: numbers are stable for the lifetime of
// a binary pairing and must never be reassigned without a coordinated kernel
// change. tools/tablecheck.go verifies this file against tools/syscalls.toml.
type Number uintptr

const (
	// SYS_READ reads from a file descriptor - read(fd, buf, len).
	SYS_READ Number = 0x1
	// SYS_WRITE writes to a file descriptor - write(fd, buf, len).
	SYS_WRITE Number = 0x2
	// SYS_OPEN opens a file and returns a file descriptor - open(path, path_len, flags).
	SYS_OPEN Number = 0x3
	// SYS_CLOSE closes a file descriptor - close(fd).
	SYS_CLOSE Number = 0x4
	// SYS_FLUSH flushes a file descriptor - flush(fd).
	SYS_FLUSH Number = 0x5
	// SYS_EXIT exits the current process - exit(status).
	SYS_EXIT Number = 0x6
	// SYS_SLEEP sleeps for a number of nanoseconds - sleep(nanos).
	SYS_SLEEP Number = 0x7
	// SYS_WAIT busy-waits for a number of nanoseconds - wait(nanos). Not the
	// POSIX waitpid-like call; that is SYS_WAITPID.
	SYS_WAIT Number = 0x8
	// SYS_GETPID gets the process ID - getpid().
	SYS_GETPID Number = 0x9
	// SYS_SPAWN executes a new process - spawn(path, path_len, args, args_len).
	SYS_SPAWN Number = 0xA
	// SYS_FORK forks the current process - fork().
	SYS_FORK Number = 0xB
	// SYS_GETTID gets the thread ID - gettid().
	SYS_GETTID Number = 0xC
	// SYS_STOP stops the machine - stop(type).
	SYS_STOP Number = 0xD
	// SYS_WAITPID waits for a child process to exit - waitpid(pid, status).
	SYS_WAITPID Number = 0xE
	// SYS_CONNECT connects a socket - connect(fd, addr, addr_len).
	SYS_CONNECT Number = 0xF
	// SYS_ACCEPT accepts a connection on a socket - accept(fd, addr, addr_len).
	SYS_ACCEPT Number = 0x10
	// SYS_LISTEN listens for connections on a socket - listen(fd, backlog).
	SYS_LISTEN Number = 0x11
	// SYS_ALLOC allocates memory - alloc(size, align).
	SYS_ALLOC Number = 0x12
	// SYS_FREE frees memory - free(ptr, size, align).
	SYS_FREE Number = 0x13
	// SYS_KIND gets the kind of the current process - kind().
	SYS_KIND Number = 0x14
	// SYS_GETERRNO gets the last error number - get_errno().
	SYS_GETERRNO Number = 0x15
	// SYS_POLL polls a file descriptor - poll(fd, event).
	SYS_POLL Number = 0x16
	// SYS_BOOTTIME gets the number of nanoseconds since boot - boot_time().
	SYS_BOOTTIME Number = 0x17
	// SYS_TIME gets the number of seconds since 1970-01-01T00:00:00Z - unix_time().
	SYS_TIME Number = 0x18
	// SYS_SEEK seeks to a position in a file descriptor - seek(fd, pos).
	SYS_SEEK Number = 0x19
)

var names = map[Number]string{
	SYS_READ:     "read",
	SYS_WRITE:    "write",
	SYS_OPEN:     "open",
	SYS_CLOSE:    "close",
	SYS_FLUSH:    "flush",
	SYS_EXIT:     "exit",
	SYS_SLEEP:    "sleep",
	SYS_WAIT:     "wait",
	SYS_GETPID:   "getpid",
	SYS_SPAWN:    "spawn",
	SYS_FORK:     "fork",
	SYS_GETTID:   "gettid",
	SYS_STOP:     "stop",
	SYS_WAITPID:  "waitpid",
	SYS_CONNECT:  "connect",
	SYS_ACCEPT:   "accept",
	SYS_LISTEN:   "listen",
	SYS_ALLOC:    "alloc",
	SYS_FREE:     "free",
	SYS_KIND:     "kind",
	SYS_GETERRNO: "get_errno",
	SYS_POLL:     "poll",
	SYS_BOOTTIME: "boot_time",
	SYS_TIME:     "unix_time",
	SYS_SEEK:     "seek",
}

// String returns the kernel's name for the service.
func (n Number) String() string {
	if name, ok := names[n]; ok {
		return name
	}
	return "<unknown>"
}
