package kernel

import (
	"crypto/rand"
	"io"

	"github.com/werdl/rustnix/pkg/errors"
	"github.com/werdl/rustnix/pkg/sys"
)

// stream is what every file descriptor resolves to. Errno 0 means success.
type stream interface {
	read(p []byte) (int, errors.Errno)
	write(p []byte) (int, errors.Errno)
	flush() errors.Errno
	close() errors.Errno
	poll(ev sys.Event) bool
	seek(pos int) (int, errors.Errno)
}

// Device descriptors, preopened at boot.
const (
	fdStdin  = 0
	fdStdout = 1
	fdStderr = 2
	fdNull   = 3
	fdZero   = 4
	fdRand   = 5

	numDevices = 6
)

var deviceFDs = map[string]int{
	"/dev/stdin":  fdStdin,
	"/dev/stdout": fdStdout,
	"/dev/stderr": fdStderr,
	"/dev/null":   fdNull,
	"/dev/zero":   fdZero,
	"/dev/random": fdRand,
}

func deviceFD(name string) (int, bool) {
	fd, ok := deviceFDs[name]
	return fd, ok
}

func newDevice(cfg Config, fd int) stream {
	switch fd {
	case fdStdin:
		return &stdio{r: cfg.Stdin}
	case fdStdout:
		return &stdio{w: cfg.Stdout}
	case fdStderr:
		return &stdio{w: cfg.Stderr}
	case fdNull:
		return nullDev{}
	case fdZero:
		return zeroDev{}
	default:
		return randDev{}
	}
}

// stdio adapts one direction of the host's standard streams.
type stdio struct {
	r io.Reader
	w io.Writer
}

func (s *stdio) read(p []byte) (int, errors.Errno) {
	if s.r == nil {
		return 0, errors.EBADF
	}
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF {
		return 0, errors.EIO
	}
	return n, 0
}

func (s *stdio) write(p []byte) (int, errors.Errno) {
	if s.w == nil {
		return 0, errors.EBADF
	}
	n, err := s.w.Write(p)
	if err != nil {
		return 0, errors.EIO
	}
	return n, 0
}

func (s *stdio) flush() errors.Errno { return 0 }
func (s *stdio) close() errors.Errno { return 0 }
func (s *stdio) poll(ev sys.Event) bool { return (ev == sys.EventRead) == (s.r != nil) }
func (s *stdio) seek(pos int) (int, errors.Errno) { return pos, 0 }

// nullDev swallows writes and reads nothing.
type nullDev struct{}

func (nullDev) read(p []byte) (int, errors.Errno) { return 0, 0 }
func (nullDev) write(p []byte) (int, errors.Errno) { return len(p), 0 }
func (nullDev) flush() errors.Errno { return 0 }
func (nullDev) close() errors.Errno { return 0 }
func (nullDev) poll(ev sys.Event) bool { return ev == sys.EventWrite }
func (nullDev) seek(pos int) (int, errors.Errno) { return pos, 0 }

// zeroDev reads zeroes forever and swallows writes.
type zeroDev struct{}

func (zeroDev) read(p []byte) (int, errors.Errno) {
	for i := range p {
		p[i] = 0
	}
	return len(p), 0
}

func (zeroDev) write(p []byte) (int, errors.Errno) { return len(p), 0 }
func (zeroDev) flush() errors.Errno { return 0 }
func (zeroDev) close() errors.Errno { return 0 }
func (zeroDev) poll(ev sys.Event) bool { return true }
func (zeroDev) seek(pos int) (int, errors.Errno) { return pos, 0 }

// randDev reads from the host entropy source.
type randDev struct{}

func (randDev) read(p []byte) (int, errors.Errno) {
	if _, err := rand.Read(p); err != nil {
		return 0, errors.EIO
	}
	return len(p), 0
}

func (randDev) write(p []byte) (int, errors.Errno) { return len(p), 0 }
func (randDev) flush() errors.Errno { return 0 }
func (randDev) close() errors.Errno { return 0 }
func (randDev) poll(ev sys.Event) bool { return true }
func (randDev) seek(pos int) (int, errors.Errno) { return pos, 0 }
