// check_staged refuses a commit whose staged files span more than two
// packages of the module. Install it as a pre-commit hook with
//
//	go run ./tools/git-hooks
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path"
	"slices"
	"strings"
)

const maxComponents = 2

// Packages that count as components, most specific first.
var componentDirs = []string{"app/core", "app/nodes", "app", "util"}

func main() {
	cmd := exec.Command("git", "diff", "--cached", "--name-only")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		fmt.Printf("Warning: could not check staged files: %v\n", err)
		os.Exit(0)
	}

	touched := components(strings.Split(out.String(), "\n"))
	if len(touched) <= maxComponents {
		os.Exit(0)
	}

	fmt.Println("WARNING: You are modifying multiple components in a single commit:")
	for _, c := range touched {
		fmt.Printf(" - %s\n", c)
	}
	fmt.Println("Atomic commits should ideally affect only one component.")
	fmt.Println("If this is a refactor, please ensure the commit message reflects that.")
	os.Exit(1)
}

// components returns the sorted set of component packages the files live
// in. Files outside every component (docs, tools, go.mod) are ignored.
func components(files []string) []string {
	var res []string
	for _, f := range files {
		f = strings.TrimSpace(f)
		if f == "" || !strings.HasSuffix(f, ".go") {
			continue
		}
		dir := path.Dir(f)
		for _, c := range componentDirs {
			if dir == c {
				if !slices.Contains(res, c) {
					res = append(res, c)
				}
				break
			}
		}
	}
	slices.Sort(res)
	return res
}
