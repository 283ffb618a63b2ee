package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/werdl/rustnix/pkg/errors"
	"github.com/werdl/rustnix/pkg/sys"
)

// openProc serves /proc/<pid>/<route> as a snapshot of host process state.
func openProc(name string) (stream, errors.Errno) {
	parts := strings.Split(name, "/")
	// ["", "proc", "<pid>", ...]
	if len(parts) < 3 {
		return nil, errors.ENOENT
	}
	pid, err := strconv.ParseInt(parts[2], 10, 32)
	if err != nil {
		return nil, errors.ENOENT
	}
	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return nil, errors.ENOENT
	}

	route := ""
	if len(parts) > 3 {
		route = strings.Join(parts[3:], "/")
	}
	text, e := renderProc(p, route)
	if !e.Ok() {
		return nil, e
	}
	return &procFile{data: []byte(text)}, 0
}

func renderProc(p *process.Process, route string) (string, errors.Errno) {
	name, _ := p.Name()
	switch route {
	case "name":
		return name + "\n", 0
	case "", "status":
		status, _ := p.Status()
		created, _ := p.CreateTime()
		var b strings.Builder
		fmt.Fprintf(&b, "pid: %d\n", p.Pid)
		fmt.Fprintf(&b, "name: %s\n", name)
		fmt.Fprintf(&b, "status: %s\n", strings.Join(status, ","))
		fmt.Fprintf(&b, "created: %d\n", created)
		return b.String(), 0
	default:
		return "", errors.ENOENT
	}
}

// procFile is a read-only, seekable snapshot.
type procFile struct {
	data []byte
	pos  int
}

func (f *procFile) read(p []byte) (int, errors.Errno) {
	if f.pos >= len(f.data) {
		return 0, 0
	}
	n := copy(p, f.data[f.pos:])
	f.pos += n
	return n, 0
}

func (f *procFile) write(p []byte) (int, errors.Errno) { return 0, errors.EACCES }
func (f *procFile) flush() errors.Errno { return 0 }
func (f *procFile) close() errors.Errno { return 0 }
func (f *procFile) poll(ev sys.Event) bool { return ev == sys.EventRead }

func (f *procFile) seek(pos int) (int, errors.Errno) {
	if pos < 0 || pos > len(f.data) {
		return 0, errors.EINVAL
	}
	f.pos = pos
	return pos, 0
}
