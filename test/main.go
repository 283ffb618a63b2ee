// End-to-end exerciser: binds the in-process kernel and runs every service a
// hosted process can reach, printing what came back. Useful for eyeballing
// the full userland path outside the unit tests.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	rustnix "github.com/werdl/rustnix"
	"github.com/werdl/rustnix/pkg/kernel"
	"github.com/werdl/rustnix/pkg/sys"
)

func main() {
	k := kernel.New(kernel.Config{
		Log: hclog.New(&hclog.LoggerOptions{Name: "kernel", Level: hclog.Trace}),
	})
	sys.Bind(k)

	fmt.Println("=== devices ===")
	n := sys.Write(1, []byte("write to /dev/stdout\n"))
	fmt.Printf("write -> %d\n", n)

	fd := sys.Open("/dev/zero", sys.FlagRead)
	buf := []byte{0xff, 0xff, 0xff, 0xff}
	fmt.Printf("open /dev/zero -> fd %d\n", fd)
	fmt.Printf("read -> %d, buf %v\n", sys.Read(fd, buf), buf)
	fmt.Printf("poll(read) -> %d\n", sys.Poll(fd, sys.EventRead))

	fmt.Println("=== errno ===")
	if fd := sys.Open("/dev/nonexistent", sys.FlagRead); fd < 0 {
		fmt.Printf("open failed, get_errno -> %v\n", sys.LastError())
	}

	fmt.Println("=== heap ===")
	ptr := sys.Alloc(4096, 8)
	fmt.Printf("alloc(4096, 8) -> %#x\n", ptr)
	sys.Free(ptr, 4096, 8)
	sys.Free(ptr, 4096, 8) // double free: kernel logs, nothing explodes

	fmt.Println("=== process ===")
	fmt.Printf("getpid -> %d, gettid -> %d, kind -> %d\n", sys.GetPID(), sys.GetTID(), sys.Kind())
	fmt.Printf("fork -> %d (expected -1, errno %v)\n", sys.Fork(), sys.LastError())

	fmt.Println("=== clocks ===")
	fmt.Printf("boot_time -> %s\n", time.Duration(sys.BootTime()))
	fmt.Printf("unix_time -> %s\n", time.Unix(int64(sys.UnixTime()), 0))
	sys.Sleep(10 * time.Millisecond)

	fmt.Println("=== fallible layer ===")
	if _, err := rustnix.Open("/no/such/path", sys.FlagRead); err != nil {
		fmt.Printf("rustnix.Open -> %v\n", err)
	}

	fmt.Println("=== spawn ===")
	code := rustnix.Spawn("/bin/true")
	fmt.Printf("spawn /bin/true -> %s\n", code)

	fmt.Println("=== stop ===")
	sys.Stop(sys.StopReboot)
	fmt.Printf("rebooted, stdout still works: %d\n", sys.Write(1, []byte("ok\n")))
	sys.Stop(sys.StopShutdown)
	if k.Stopped() {
		fmt.Println("kernel stopped")
	}
	os.Exit(0)
}
