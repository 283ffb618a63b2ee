package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/hashicorp/go-hclog"

	rustnix "github.com/werdl/rustnix"
	"github.com/werdl/rustnix/pkg/kernel"
	"github.com/werdl/rustnix/pkg/proc"
	"github.com/werdl/rustnix/pkg/sys"
)

var verbose = flag.Bool("verbose", false, "trace every syscall to stderr")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(&tableCmd{}, "")
	subcommands.Register(&demoCmd{}, "")
	subcommands.Register(&timeCmd{}, "")
	subcommands.Register(&spawnCmd{}, "")
	flag.Parse()

	level := hclog.Warn
	if *verbose {
		level = hclog.Trace
	}
	sys.Bind(kernel.New(kernel.Config{
		Log: hclog.New(&hclog.LoggerOptions{Name: "kernel", Level: level}),
	}))

	os.Exit(int(subcommands.Execute(context.Background())))
}

type tableCmd struct{}

func (*tableCmd) Name() string { return "table" }
func (*tableCmd) Synopsis() string { return "dump the syscall number table" }
func (*tableCmd) Usage() string { return "table:\n  print every syscall number and its service name\n" }
func (*tableCmd) SetFlags(*flag.FlagSet) {}

func (*tableCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	for n := sys.SYS_READ; n <= sys.SYS_SEEK; n++ {
		fmt.Printf("0x%02X  %s\n", uintptr(n), n)
	}
	return subcommands.ExitSuccess
}

type demoCmd struct{}

func (*demoCmd) Name() string { return "demo" }
func (*demoCmd) Synopsis() string { return "walk the userland path against the in-process kernel" }
func (*demoCmd) Usage() string { return "demo:\n  exercise devices, files, the heap and the clocks\n" }
func (*demoCmd) SetFlags(*flag.FlagSet) {}

func (*demoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := rustnix.Write(1, []byte("hello from the write syscall\n")); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		return subcommands.ExitFailure
	}

	fd, err := rustnix.Open("/dev/random", sys.FlagRead)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open /dev/random:", err)
		return subcommands.ExitFailure
	}
	buf := make([]byte, 8)
	if _, err := rustnix.Read(fd, buf); err != nil {
		fmt.Fprintln(os.Stderr, "read:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("8 bytes of entropy: %x\n", buf)

	ptr, err := rustnix.Alloc(1024, 16)
	if err != nil {
		fmt.Fprintln(os.Stderr, "alloc:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("alloc(1024, 16) = %#x\n", ptr)
	rustnix.Free(ptr, 1024, 16)

	// A deliberate failure, to show the errno path.
	if _, err := rustnix.Open("/dev/teapot", sys.FlagRead); err != nil {
		fmt.Printf("open /dev/teapot: %v (as expected)\n", err)
	}

	fmt.Printf("up %s, kernel clock %s\n", rustnix.BootTime().Round(0), rustnix.Now())
	return subcommands.ExitSuccess
}

type timeCmd struct{}

func (*timeCmd) Name() string { return "time" }
func (*timeCmd) Synopsis() string { return "print the kernel clocks" }
func (*timeCmd) Usage() string { return "time:\n  print boot_time and unix_time\n" }
func (*timeCmd) SetFlags(*flag.FlagSet) {}

func (*timeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Printf("boot_time: %s\n", rustnix.BootTime().Round(0))
	fmt.Printf("unix_time: %s\n", rustnix.Now())
	return subcommands.ExitSuccess
}

type spawnCmd struct{}

func (*spawnCmd) Name() string { return "spawn" }
func (*spawnCmd) Synopsis() string { return "spawn a program and report its exit code" }
func (*spawnCmd) Usage() string {
	return "spawn <path> [args...]:\n  run a program through the spawn syscall\n"
}
func (*spawnCmd) SetFlags(*flag.FlagSet) {}

func (*spawnCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "spawn: need a program path")
		return subcommands.ExitUsageError
	}
	code := proc.Spawn(f.Arg(0), f.Args()[1:]...)
	fmt.Printf("%s exited: %s (%d)\n", strings.Join(f.Args(), " "), code, uint8(code))
	if code != proc.Success {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
