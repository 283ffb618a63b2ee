package kernel

import (
	"time"

	"github.com/shirou/gopsutil/v4/host"
	"golang.org/x/sys/unix"
)

// bootNanos reports nanoseconds since boot. The host's boot time stands in
// for the kernel's; if it cannot be read, the kernel's own start does.
func (k *Kernel) bootNanos() uint64 {
	if secs, err := host.BootTime(); err == nil && secs > 0 {
		return uint64(time.Since(time.Unix(int64(secs), 0)))
	}
	return uint64(time.Since(k.started))
}

func (k *Kernel) gettid() uintptr {
	return uintptr(unix.Gettid())
}
