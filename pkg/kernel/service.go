package kernel

import (
	"os/exec"
	"path"
	"strings"
	"unsafe"

	"github.com/werdl/rustnix/pkg/errors"
	"github.com/werdl/rustnix/pkg/sys"
)

func (k *Kernel) lookup(fd int) (stream, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	s, ok := k.files[fd]
	return s, ok
}

func (k *Kernel) read(fd int, buf []byte) uintptr {
	s, ok := k.lookup(fd)
	if !ok {
		return k.fail(errors.EBADF)
	}
	n, e := s.read(buf)
	if !e.Ok() {
		return k.fail(e)
	}
	return word(n)
}

func (k *Kernel) write(fd int, buf []byte) uintptr {
	s, ok := k.lookup(fd)
	if !ok {
		return k.fail(errors.EBADF)
	}
	n, e := s.write(buf)
	if !e.Ok() {
		return k.fail(e)
	}
	return word(n)
}

func (k *Kernel) open(name string, flags sys.Flags) uintptr {
	name = canonicalise(name)

	// Device paths resolve to their fixed descriptors rather than opening
	// anything new.
	if strings.HasPrefix(name, "/dev/") {
		fd, ok := deviceFD(name)
		if !ok {
			k.log.Warn("unknown device", "path", name)
			return k.fail(errors.ENOENT)
		}
		return word(fd)
	}

	var (
		s stream
		e errors.Errno
	)
	if strings.HasPrefix(name, "/proc/") {
		s, e = openProc(name)
	} else {
		s, e = openHost(name, flags)
	}
	if !e.Ok() {
		return k.fail(e)
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	fd := k.nextFD
	k.nextFD++
	k.files[fd] = s
	return word(fd)
}

func (k *Kernel) close(fd int) uintptr {
	k.mu.Lock()
	s, ok := k.files[fd]
	delete(k.files, fd)
	k.mu.Unlock()
	if !ok {
		return k.fail(errors.EBADF)
	}
	if e := s.close(); !e.Ok() {
		return k.fail(e)
	}
	return 0
}

func (k *Kernel) flush(fd int) uintptr {
	s, ok := k.lookup(fd)
	if !ok {
		return k.fail(errors.EBADF)
	}
	if e := s.flush(); !e.Ok() {
		return k.fail(e)
	}
	return 0
}

func (k *Kernel) seek(fd, pos int) uintptr {
	s, ok := k.lookup(fd)
	if !ok {
		return k.fail(errors.EBADF)
	}
	n, e := s.seek(pos)
	if !e.Ok() {
		return k.fail(e)
	}
	return word(n)
}

func (k *Kernel) poll(fd int, ev sys.Event) uintptr {
	if ev != sys.EventRead && ev != sys.EventWrite {
		return k.fail(errors.EINVAL)
	}
	s, ok := k.lookup(fd)
	if !ok {
		return k.fail(errors.EBADF)
	}
	if s.poll(ev) {
		return 1
	}
	return 0
}

func (k *Kernel) alloc(size, align uintptr) uintptr {
	if size == 0 || (align != 0 && align&(align-1) != 0) {
		return 0
	}
	block := make([]byte, size+align)
	p := uintptr(unsafe.Pointer(&block[0]))
	if align > 0 {
		if rem := p % align; rem != 0 {
			p += align - rem
		}
	}
	k.mu.Lock()
	k.heap[p] = allocation{block: block, size: size, align: align}
	k.mu.Unlock()
	return p
}

// free releases an allocation. The triple is trusted exactly as far as the
// real kernel trusts it: a mismatch is logged and the block leaks, which is
// the closest a safe host process can get to undefined behavior.
func (k *Kernel) free(ptr, size, align uintptr) {
	k.mu.Lock()
	defer k.mu.Unlock()
	a, ok := k.heap[ptr]
	if !ok || a.size != size || a.align != align {
		k.log.Warn("mismatched free", "ptr", ptr, "size", size, "align", align)
		return
	}
	delete(k.heap, ptr)
}

// spawn runs path as a host subprocess and returns its exit code as the raw
// status word, the same shape the real kernel hands back from SPAWN.
func (k *Kernel) spawn(name string, args []string) uintptr {
	name = canonicalise(name)
	cmd := exec.Command(name, args...)
	cmd.Stdin = k.cfg.Stdin
	cmd.Stdout = k.cfg.Stdout
	cmd.Stderr = k.cfg.Stderr
	err := cmd.Run()
	if err == nil {
		return 0
	}
	if exit, ok := err.(*exec.ExitError); ok {
		return uintptr(uint8(exit.ExitCode()))
	}
	k.log.Warn("spawn failed", "path", name, "err", err)
	return k.fail(errors.ENOENT)
}

func (k *Kernel) stop(kind uintptr) uintptr {
	switch sys.StopKind(kind) {
	case sys.StopShutdown:
		k.log.Info("shutdown requested")
		k.mu.Lock()
		k.stopped = true
		k.mu.Unlock()
		return 0
	case sys.StopReboot:
		k.log.Info("reboot requested")
		k.reset()
		return 0
	default:
		k.log.Warn("unknown stop type", "type", kind)
		return k.fail(errors.EINVAL)
	}
}

func (k *Kernel) exitProcess(code uint8) uintptr {
	k.log.Debug("process exited", "code", code)
	k.mu.Lock()
	k.exited = true
	k.exit = code
	k.mu.Unlock()
	// The userland wrapper halts the caller regardless of what comes back.
	return uintptr(code)
}

// canonicalise collapses a path the way the kernel's vfs does before routing.
func canonicalise(name string) string {
	if name == "" {
		return "/"
	}
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	return path.Clean(name)
}
