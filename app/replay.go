package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bvisness/flowwire/app/core"
	"github.com/bvisness/flowwire/app/nodes"
	"github.com/google/uuid"
)

// Replay drives an editor from a gesture script, one command per line:
//
//	node <name> <kind> <x> <y>   place a palette node (kind is fuzzy matched)
//	press <x> <y>                pointer events, in scene coordinates; a
//	                             press must follow a release or cancel
//	move <x> <y>
//	release <x> <y>
//	cancel
//	movenode <name> <x> <y>
//	delete <name>
//	dump                         print every connection
//
// Blank lines and lines starting with # are skipped.
func Replay(r io.Reader, w io.Writer, settings *Settings) error {
	e, err := NewEditor(settings, nil)
	if err != nil {
		return err
	}
	rp := replayer{
		e:     e,
		w:     w,
		named: make(map[string]*nodes.BoxNode),
		names: make(map[uuid.UUID]string),
	}

	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := rp.exec(strings.Fields(line)); err != nil {
			return fmt.Errorf("line %d: %q: %w", lineNo, line, err)
		}
	}
	return sc.Err()
}

var (
	errUsage       = errors.New("wrong number of arguments")
	errPointerDown = errors.New("pointer is already down")
)

type replayer struct {
	e     *Editor
	w     io.Writer
	named map[string]*nodes.BoxNode
	names map[uuid.UUID]string
	last  nodes.V2
}

func (rp *replayer) exec(args []string) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "node":
		if len(args) != 4 {
			return errUsage
		}
		name := args[0]
		if _, exists := rp.named[name]; exists {
			return fmt.Errorf("node %q already exists", name)
		}
		matches := rp.e.Palette.Search(args[1])
		if len(matches) == 0 {
			return fmt.Errorf("no node kind matches %q", args[1])
		}
		at, err := parsePoint(args[2:])
		if err != nil {
			return err
		}
		n := rp.e.AddNode(matches[0], at)
		rp.named[name] = n
		rp.names[n.ID()] = name
	case "press", "move", "release":
		if len(args) != 2 {
			return errUsage
		}
		at, err := parsePoint(args)
		if err != nil {
			return err
		}
		kind := map[string]core.PointerKind{
			"press":   core.PointerPress,
			"move":    core.PointerMove,
			"release": core.PointerRelease,
		}[cmd]
		prev := rp.last
		if kind == core.PointerPress {
			if rp.e.Scene.Captured() != nil {
				return errPointerDown
			}
			prev = at
		}
		rp.e.Scene.Dispatch(core.PointerEvent{Kind: kind, Pos: at, Prev: prev})
		rp.last = at
	case "cancel":
		rp.e.Scene.Dispatch(core.PointerEvent{Kind: core.PointerCancel, Pos: rp.last, Prev: rp.last})
	case "movenode":
		if len(args) != 3 {
			return errUsage
		}
		n, err := rp.node(args[0])
		if err != nil {
			return err
		}
		at, err := parsePoint(args[1:])
		if err != nil {
			return err
		}
		n.MoveTo(at)
	case "delete":
		if len(args) != 1 {
			return errUsage
		}
		n, err := rp.node(args[0])
		if err != nil {
			return err
		}
		rp.e.Scene.RemoveNode(n.ID())
		delete(rp.named, args[0])
	case "dump":
		rp.dump()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (rp *replayer) node(name string) (*nodes.BoxNode, error) {
	n, ok := rp.named[name]
	if !ok {
		return nil, fmt.Errorf("no node named %q", name)
	}
	return n, nil
}

func (rp *replayer) dump() {
	conns := rp.e.Scene.Connections()
	fmt.Fprintf(rp.w, "%d connection(s)\n", len(conns))
	for _, c := range conns {
		fmt.Fprintf(rp.w, "  %s -> %s", rp.describe(c, core.EndSource), rp.describe(c, core.EndSink))
		if c.Dragging() != core.EndNone {
			fmt.Fprintf(rp.w, " (%s)", c.Phase())
		}
		fmt.Fprintln(rp.w)
	}
}

func (rp *replayer) describe(c *core.Connection, end core.EndType) string {
	ep := c.Endpoint(end)
	if !ep.Bound() {
		return fmt.Sprintf("(%g,%g)", ep.Pos.X, ep.Pos.Y)
	}
	return fmt.Sprintf("%s:%d", rp.names[ep.Binding.Node], ep.Binding.Port)
}

func parsePoint(args []string) (nodes.V2, error) {
	x, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		return nodes.V2{}, fmt.Errorf("bad x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 32)
	if err != nil {
		return nodes.V2{}, fmt.Errorf("bad y: %w", err)
	}
	return nodes.V2{X: float32(x), Y: float32(y)}, nil
}

// HeadlessReplay runs a gesture script against the settings file and prints
// the transcript to stdout.
func HeadlessReplay(path string) error {
	fmt.Printf("Replaying %s\n", path)

	settings, err := LoadSettings(GetSettingsPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Settings: %v\n", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	return Replay(f, os.Stdout, settings)
}
