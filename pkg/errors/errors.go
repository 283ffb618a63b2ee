// Package errors holds the kernel's errno values.
//
// The kernel keeps a single process-wide "last error" slot; fallible syscalls
// report failure through a negative result and record the cause here, to be
// read back with the get_errno service. The numbering is part of the wire
// contract and must track the kernel's table.
package errors

import "fmt"

// Errno is a kernel error number. The zero value means "no error".
type Errno uintptr

// Errno values as defined by the kernel.
const (
	EPERM        Errno = 1   // not super-user
	ENOENT       Errno = 2   // no such file or directory
	EIO          Errno = 5   // I/O error
	E2BIG        Errno = 7   // argument list too long
	ENOEXEC      Errno = 8   // exec format error
	EBADF        Errno = 9   // bad file number
	ENOMEM       Errno = 12  // not enough core
	EACCES       Errno = 13  // permission denied
	EEXIST       Errno = 17  // file exists
	ENODEV       Errno = 19  // no such device
	ENOTDIR      Errno = 20  // not a directory
	EISDIR       Errno = 21  // is a directory
	EINVAL       Errno = 22  // invalid argument
	ENFILE       Errno = 23  // too many open files in system
	EFBIG        Errno = 27  // file too large
	ENOSPC       Errno = 28  // no space left on device
	EROFS        Errno = 30  // read-only file system
	ENOCSI       Errno = 43  // no csi structure available
	ENOSYS       Errno = 88  // function not implemented
	ENAMETOOLONG Errno = 91  // file/path name too long
	EOVERFLOW    Errno = 139 // value too large for defined data type
)

var messages = map[Errno]string{
	EPERM:        "operation not permitted",
	ENOENT:       "no such file or directory",
	EIO:          "I/O error",
	E2BIG:        "argument list too long",
	ENOEXEC:      "exec format error",
	EBADF:        "bad file number",
	ENOMEM:       "out of memory",
	EACCES:       "permission denied",
	EEXIST:       "file exists",
	ENODEV:       "no such device",
	ENOTDIR:      "not a directory",
	EISDIR:       "is a directory",
	EINVAL:       "invalid argument",
	ENFILE:       "file table overflow",
	EFBIG:        "file too large",
	ENOSPC:       "no space left on device",
	EROFS:        "read-only file system",
	ENOCSI:       "no CSI structure available",
	ENOSYS:       "function not implemented",
	ENAMETOOLONG: "file name too long",
	EOVERFLOW:    "value too large for defined data type",
}

// Ok reports whether e records no error.
func (e Errno) Ok() bool { return e == 0 }

// Error implements error.
func (e Errno) Error() string {
	if msg, ok := messages[e]; ok {
		return msg
	}
	return fmt.Sprintf("errno %d", uintptr(e))
}
