package kernel

import "unsafe"

// The trap boundary carries pointers as plain words. These helpers are the
// only place those words become typed memory again; they are sound only
// because the hosted kernel shares an address space with its callers.

func bytesAt(ptr, n uintptr) []byte {
	if ptr == 0 || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n)
}

func stringAt(ptr, n uintptr) string {
	if ptr == 0 || n == 0 {
		return ""
	}
	return unsafe.String((*byte)(unsafe.Pointer(ptr)), n)
}

// stringRef mirrors the (pointer, length) pair layout the userland side packs
// argument vectors with.
type stringRef struct {
	ptr uintptr
	len uintptr
}

func argsAt(ptr, n uintptr) []string {
	if ptr == 0 || n == 0 {
		return nil
	}
	refs := unsafe.Slice((*stringRef)(unsafe.Pointer(ptr)), n)
	out := make([]string, n)
	for i, r := range refs {
		out[i] = stringAt(r.ptr, r.len)
	}
	return out
}
