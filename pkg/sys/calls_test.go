package sys_test

import (
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"

	"github.com/werdl/rustnix/pkg/sys"
)

func bind(t *testing.T, k sys.Kernel) {
	t.Helper()
	prev := sys.Bind(k)
	t.Cleanup(func() { sys.Bind(prev) })
}

// recorder captures every trap it services.
type recorder struct {
	calls []trap
	reply func(n sys.Number, args []uintptr) uintptr
}

type trap struct {
	n    sys.Number
	args []uintptr
}

func (r *recorder) Trap(n sys.Number, args []uintptr) uintptr {
	r.calls = append(r.calls, trap{n: n, args: append([]uintptr(nil), args...)})
	if r.reply == nil {
		return 0
	}
	return r.reply(n, args)
}

// Every arity must reproduce exactly the arguments passed, in declared
// order. The mock kernel echoes back the sum of number and arguments so the
// result checks the same thing from the other side.
func TestTrapArities(t *testing.T) {
	rec := &recorder{reply: func(n sys.Number, args []uintptr) uintptr {
		sum := uintptr(n)
		for _, a := range args {
			sum += a
		}
		return sum
	}}
	bind(t, rec)

	tests := []struct {
		name string
		call func() uintptr
		n    sys.Number
		args []uintptr
	}{
		{"arity0", func() uintptr { return sys.Syscall0(sys.SYS_TIME) }, sys.SYS_TIME, nil},
		{"arity1", func() uintptr { return sys.Syscall1(sys.SYS_CLOSE, 7) }, sys.SYS_CLOSE, []uintptr{7}},
		{"arity2", func() uintptr { return sys.Syscall2(sys.SYS_SEEK, 3, 512) }, sys.SYS_SEEK, []uintptr{3, 512}},
		{"arity3", func() uintptr { return sys.Syscall3(sys.SYS_FREE, 0x1000, 64, 8) }, sys.SYS_FREE, []uintptr{0x1000, 64, 8}},
		{"arity4", func() uintptr { return sys.Syscall4(sys.SYS_SPAWN, 1, 2, 3, 4) }, sys.SYS_SPAWN, []uintptr{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec.calls = nil
			got := tt.call()

			want := uintptr(tt.n)
			for _, a := range tt.args {
				want += a
			}
			if got != want {
				t.Errorf("raw result = %d, want echo sum %d", got, want)
			}
			if len(rec.calls) != 1 {
				t.Fatalf("issued %d traps, want 1", len(rec.calls))
			}
			if rec.calls[0].n != tt.n {
				t.Errorf("trapped number = %v, want %v", rec.calls[0].n, tt.n)
			}
			if diff := cmp.Diff(tt.args, rec.calls[0].args); diff != "" {
				t.Errorf("argument registers (-want +got):\n%s", diff)
			}
		})
	}
}

// A raw word holding the bit pattern of -1 must classify as failure for the
// fallible wrappers.
func TestNegativeSentinel(t *testing.T) {
	bind(t, sys.KernelFunc(func(sys.Number, []uintptr) uintptr {
		return ^uintptr(0)
	}))

	if n := sys.Write(1, []byte("x")); n != -1 {
		t.Errorf("Write on failing kernel = %d, want -1", n)
	}
	if fd := sys.Open("/x", sys.FlagRead); fd != -1 {
		t.Errorf("Open on failing kernel = %d, want -1", fd)
	}
	if n := sys.Read(0, make([]byte, 4)); n != -1 {
		t.Errorf("Read on failing kernel = %d, want -1", n)
	}
}

// Free performs no wrapper-side validation: whatever triple the caller
// passes crosses the boundary verbatim, matched to a prior alloc or not, and
// no extra traffic is generated around it.
func TestFreeForwardsVerbatim(t *testing.T) {
	rec := &recorder{reply: func(n sys.Number, _ []uintptr) uintptr {
		if n == sys.SYS_ALLOC {
			return 0x4000
		}
		return 0
	}}
	bind(t, rec)

	ptr := sys.Alloc(64, 8)
	sys.Free(ptr+8, 32, 16) // not the triple that was allocated

	want := []trap{
		{n: sys.SYS_ALLOC, args: []uintptr{64, 8}},
		{n: sys.SYS_FREE, args: []uintptr{ptr + 8, 32, 16}},
	}
	if diff := cmp.Diff(want, rec.calls, cmp.AllowUnexported(trap{})); diff != "" {
		t.Errorf("trap traffic (-want +got):\n%s", diff)
	}
}

// Open passes the path as a (pointer, length) pair with no terminator; the
// mock kernel reads the bytes back out of the caller's memory.
func TestOpenMarshalsPath(t *testing.T) {
	const path = "/dev/random"
	var got string
	bind(t, sys.KernelFunc(func(n sys.Number, args []uintptr) uintptr {
		if n != sys.SYS_OPEN {
			t.Fatalf("trapped %v, want %v", n, sys.SYS_OPEN)
		}
		got = readString(args[0], args[1])
		if sys.Flags(args[2]) != sys.FlagRead|sys.FlagWrite {
			t.Errorf("flags word = %#x, want %#x", args[2], uintptr(sys.FlagRead|sys.FlagWrite))
		}
		return 5
	}))

	if fd := sys.Open(path, sys.FlagRead|sys.FlagWrite); fd != 5 {
		t.Errorf("Open = %d, want 5", fd)
	}
	if got != path {
		t.Errorf("kernel saw path %q, want %q", got, path)
	}
}

// Spawn marshals its argument vector as an array of (pointer, length) pairs.
func TestSpawnMarshalsArgv(t *testing.T) {
	args := []string{"-l", "/tmp", "--color"}
	var gotPath string
	var gotArgs []string
	bind(t, sys.KernelFunc(func(n sys.Number, regs []uintptr) uintptr {
		if n != sys.SYS_SPAWN {
			t.Fatalf("trapped %v, want %v", n, sys.SYS_SPAWN)
		}
		gotPath = readString(regs[0], regs[1])
		gotArgs = readArgs(regs[2], regs[3])
		return 0
	}))

	if r := sys.Spawn("/bin/ls", args); r != 0 {
		t.Errorf("Spawn = %d, want 0", r)
	}
	if gotPath != "/bin/ls" {
		t.Errorf("kernel saw path %q, want %q", gotPath, "/bin/ls")
	}
	if diff := cmp.Diff(args, gotArgs); diff != "" {
		t.Errorf("kernel saw argv (-want +got):\n%s", diff)
	}
}

// readString and readArgs play the kernel's part: reinterpret raw words as
// caller memory.
func readString(ptr, n uintptr) string {
	if ptr == 0 || n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n))
}

func readArgs(ptr, n uintptr) []string {
	type ref struct{ ptr, len uintptr }
	if ptr == 0 || n == 0 {
		return nil
	}
	refs := unsafe.Slice((*ref)(unsafe.Pointer(ptr)), n)
	out := make([]string, n)
	for i, r := range refs {
		out[i] = readString(r.ptr, r.len)
	}
	return out
}
