package kernel

import (
	goerrors "errors"

	"golang.org/x/sys/unix"

	"github.com/werdl/rustnix/pkg/errors"
	"github.com/werdl/rustnix/pkg/sys"
)

// hostFile backs ordinary paths with a real host file descriptor.
type hostFile struct {
	fd    int
	flags sys.Flags
}

func openHost(name string, flags sys.Flags) (stream, errors.Errno) {
	mode := unix.O_RDONLY
	switch {
	case flags&sys.FlagRead != 0 && flags&sys.FlagWrite != 0:
		mode = unix.O_RDWR
	case flags&sys.FlagWrite != 0:
		mode = unix.O_WRONLY
	}
	if flags&sys.FlagCreate != 0 {
		mode |= unix.O_CREAT
	}
	if flags&sys.FlagAppend != 0 {
		mode |= unix.O_APPEND
	}
	if flags&sys.FlagTruncate != 0 {
		mode |= unix.O_TRUNC
	}
	fd, err := unix.Open(name, mode, 0o644)
	if err != nil {
		return nil, hostErrno(err)
	}
	return &hostFile{fd: fd, flags: flags}, 0
}

func (f *hostFile) read(p []byte) (int, errors.Errno) {
	if f.flags&sys.FlagRead == 0 {
		return 0, errors.EACCES
	}
	n, err := unix.Read(f.fd, p)
	if err != nil {
		return 0, hostErrno(err)
	}
	return n, 0
}

func (f *hostFile) write(p []byte) (int, errors.Errno) {
	if f.flags&sys.FlagWrite == 0 {
		return 0, errors.EACCES
	}
	n, err := unix.Write(f.fd, p)
	if err != nil {
		return 0, hostErrno(err)
	}
	return n, 0
}

func (f *hostFile) flush() errors.Errno {
	if err := unix.Fsync(f.fd); err != nil {
		return hostErrno(err)
	}
	return 0
}

func (f *hostFile) close() errors.Errno {
	if err := unix.Close(f.fd); err != nil {
		return hostErrno(err)
	}
	return 0
}

func (f *hostFile) poll(ev sys.Event) bool {
	switch ev {
	case sys.EventRead:
		return f.flags&sys.FlagRead != 0
	case sys.EventWrite:
		return f.flags&sys.FlagWrite != 0
	}
	return false
}

func (f *hostFile) seek(pos int) (int, errors.Errno) {
	off, err := unix.Seek(f.fd, int64(pos), 0)
	if err != nil {
		return 0, hostErrno(err)
	}
	return int(off), 0
}

// hostErrno maps a host error onto the kernel's errno table. Anything without
// a counterpart collapses to EIO.
func hostErrno(err error) errors.Errno {
	var e unix.Errno
	if !goerrors.As(err, &e) {
		return errors.EIO
	}
	switch e {
	case unix.EPERM:
		return errors.EPERM
	case unix.ENOENT:
		return errors.ENOENT
	case unix.EBADF:
		return errors.EBADF
	case unix.ENOMEM:
		return errors.ENOMEM
	case unix.EACCES:
		return errors.EACCES
	case unix.EEXIST:
		return errors.EEXIST
	case unix.ENODEV:
		return errors.ENODEV
	case unix.ENOTDIR:
		return errors.ENOTDIR
	case unix.EISDIR:
		return errors.EISDIR
	case unix.EINVAL:
		return errors.EINVAL
	case unix.ENFILE:
		return errors.ENFILE
	case unix.EFBIG:
		return errors.EFBIG
	case unix.ENOSPC:
		return errors.ENOSPC
	case unix.EROFS:
		return errors.EROFS
	case unix.ENAMETOOLONG:
		return errors.ENAMETOOLONG
	case unix.EOVERFLOW:
		return errors.EOVERFLOW
	default:
		return errors.EIO
	}
}
