// Command tablecheck verifies that the syscall table compiled into
// pkg/sys/num.go matches the reference copy in tools/syscalls.toml. The
// table is the wire contract with the kernel: a renumbered or renamed entry
// does not fail compilation, it silently calls the wrong service, so this
// check is meant to run in CI against every change.
package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/BurntSushi/toml"
)

type table struct {
	Syscall []entry `toml:"syscall"`
}

type entry struct {
	Const string `toml:"const"`
	Name  string `toml:"name"`
	Num   int64  `toml:"num"`
}

var (
	tablePath  = flag.String("table", "tools/syscalls.toml", "reference table")
	sourcePath = flag.String("source", "pkg/sys/num.go", "source file to check")
)

var (
	constPattern = regexp.MustCompile(`(SYS_[A-Z0-9_]+)\s+Number\s*=\s*(0x[0-9A-Fa-f]+)`)
	namePattern  = regexp.MustCompile(`(SYS_[A-Z0-9_]+):\s*"([^"]+)"`)
)

func main() {
	flag.Parse()

	var ref table
	if _, err := toml.DecodeFile(*tablePath, &ref); err != nil {
		fmt.Fprintf(os.Stderr, "tablecheck: %v\n", err)
		os.Exit(2)
	}

	src, err := os.ReadFile(*sourcePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tablecheck: %v\n", err)
		os.Exit(2)
	}

	nums := make(map[string]int64)
	for _, m := range constPattern.FindAllStringSubmatch(string(src), -1) {
		n, err := strconv.ParseInt(m[2], 0, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tablecheck: bad literal %q for %s\n", m[2], m[1])
			os.Exit(2)
		}
		nums[m[1]] = n
	}

	names := make(map[string]string)
	for _, m := range namePattern.FindAllStringSubmatch(string(src), -1) {
		names[m[1]] = m[2]
	}

	drift := 0
	seen := make(map[string]bool)
	for _, e := range ref.Syscall {
		seen[e.Const] = true
		num, ok := nums[e.Const]
		switch {
		case !ok:
			fmt.Printf("MISSING  %s (0x%X %q) not declared in %s\n", e.Const, e.Num, e.Name, *sourcePath)
			drift++
		case num != e.Num:
			fmt.Printf("RENUMBER %s is 0x%X, table says 0x%X\n", e.Const, num, e.Num)
			drift++
		}
		if name, ok := names[e.Const]; ok && name != e.Name {
			fmt.Printf("RENAME   %s is %q, table says %q\n", e.Const, name, e.Name)
			drift++
		}
	}
	for c, n := range nums {
		if !seen[c] {
			fmt.Printf("EXTRA    %s = 0x%X not in %s\n", c, n, *tablePath)
			drift++
		}
	}

	if drift > 0 {
		fmt.Printf("\n%d mismatch(es) between %s and %s\n", drift, *sourcePath, *tablePath)
		os.Exit(1)
	}
	fmt.Printf("%d syscalls, table matches\n", len(ref.Syscall))
}
