// Package kernel is an in-process stand-in for the rustnix kernel.
//
// On hosted builds the trap primitives in pkg/sys route through whatever
// implements sys.Kernel; this package is the full-service implementation,
// dispatching every table entry against host resources so demo binaries and
// integration tests can run the complete userland path. It reproduces the
// kernel's observable conventions deliberately, including the single global
// last-error slot and its read race.
package kernel

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/werdl/rustnix/pkg/errors"
	"github.com/werdl/rustnix/pkg/sys"
)

// Config carries the kernel's collaborators. Zero values get sensible
// defaults: the process's stdio and a no-op logger.
type Config struct {
	Log    hclog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type allocation struct {
	block []byte
	size  uintptr
	align uintptr
}

// Kernel implements sys.Kernel.
type Kernel struct {
	log     hclog.Logger
	cfg     Config
	started time.Time

	mu      sync.Mutex
	files   map[int]stream
	nextFD  int
	heap    map[uintptr]allocation
	errno   errors.Errno
	stopped bool
	exited  bool
	exit    uint8
}

// New builds a kernel with the device table preopened at fds 0 through 5.
func New(cfg Config) *Kernel {
	if cfg.Log == nil {
		cfg.Log = hclog.NewNullLogger()
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	k := &Kernel{
		log:     cfg.Log,
		cfg:     cfg,
		started: time.Now(),
	}
	k.reset()
	return k
}

// reset (re)initializes the file table and heap. Also the reboot path.
func (k *Kernel) reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.files = make(map[int]stream)
	for fd := 0; fd < numDevices; fd++ {
		k.files[fd] = newDevice(k.cfg, fd)
	}
	k.nextFD = numDevices
	k.heap = make(map[uintptr]allocation)
	k.errno = 0
}

// Stopped reports whether a stop(shutdown) has been serviced.
func (k *Kernel) Stopped() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.stopped
}

// ExitStatus returns the code passed to the last serviced exit, if any.
func (k *Kernel) ExitStatus() (uint8, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.exit, k.exited
}

func (k *Kernel) setErrno(e errors.Errno) {
	k.mu.Lock()
	k.errno = e
	k.mu.Unlock()
}

func (k *Kernel) lastErrno() errors.Errno {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.errno
}

// fail records the cause in the last-error slot and yields the -1 sentinel.
func (k *Kernel) fail(e errors.Errno) uintptr {
	k.setErrno(e)
	return word(-1)
}

// word reinterprets a signed result as the raw register word.
func word(v int) uintptr { return uintptr(v) }

// arg returns the i'th trap argument, zero if the caller passed fewer. The
// real kernel reads whatever is in the register; missing arguments read as
// leftover zeroes here.
func arg(args []uintptr, i int) uintptr {
	if i < len(args) {
		return args[i]
	}
	return 0
}

// Trap dispatches one syscall. This is the kernel entry point: n arrives in
// place of the number register, args in place of the argument registers, and
// the returned word stands for the result register.
func (k *Kernel) Trap(n sys.Number, args []uintptr) uintptr {
	k.log.Trace("syscall", "name", n.String(), "args", args)
	switch n {
	case sys.SYS_READ:
		return k.read(int(arg(args, 0)), bytesAt(arg(args, 1), arg(args, 2)))
	case sys.SYS_WRITE:
		return k.write(int(arg(args, 0)), bytesAt(arg(args, 1), arg(args, 2)))
	case sys.SYS_OPEN:
		return k.open(stringAt(arg(args, 0), arg(args, 1)), sys.Flags(arg(args, 2)))
	case sys.SYS_CLOSE:
		return k.close(int(arg(args, 0)))
	case sys.SYS_FLUSH:
		return k.flush(int(arg(args, 0)))
	case sys.SYS_EXIT:
		return k.exitProcess(uint8(arg(args, 0)))
	case sys.SYS_SLEEP:
		time.Sleep(time.Duration(arg(args, 0)))
		return 0
	case sys.SYS_WAIT:
		// The real kernel spins the PIT; sleeping is as close as a host
		// process should get.
		time.Sleep(time.Duration(arg(args, 0)))
		return 0
	case sys.SYS_GETPID:
		return uintptr(os.Getpid())
	case sys.SYS_SPAWN:
		return k.spawn(stringAt(arg(args, 0), arg(args, 1)), argsAt(arg(args, 2), arg(args, 3)))
	case sys.SYS_FORK:
		return k.fail(errors.ENOSYS)
	case sys.SYS_GETTID:
		return k.gettid()
	case sys.SYS_STOP:
		return k.stop(arg(args, 0))
	case sys.SYS_WAITPID:
		return k.fail(errors.ENOSYS)
	case sys.SYS_CONNECT, sys.SYS_ACCEPT, sys.SYS_LISTEN:
		// No socket services on the hosted kernel.
		return k.fail(errors.ENOSYS)
	case sys.SYS_ALLOC:
		return k.alloc(arg(args, 0), arg(args, 1))
	case sys.SYS_FREE:
		k.free(arg(args, 0), arg(args, 1), arg(args, 2))
		return 0
	case sys.SYS_KIND:
		// Every hosted caller is an ordinary user process.
		return 0
	case sys.SYS_GETERRNO:
		return uintptr(k.lastErrno())
	case sys.SYS_POLL:
		return k.poll(int(arg(args, 0)), sys.Event(arg(args, 1)))
	case sys.SYS_BOOTTIME:
		return uintptr(k.bootNanos())
	case sys.SYS_TIME:
		return uintptr(time.Now().Unix())
	case sys.SYS_SEEK:
		return k.seek(int(arg(args, 0)), int(arg(args, 1)))
	default:
		k.log.Warn("unknown syscall", "number", uintptr(n))
		return word(-1)
	}
}
