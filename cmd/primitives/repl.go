package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/dsprim/kvstructs/internal/lock"
)

// REPL is the interactive command loop for `primitives repl`, built on
// liner: history persisted across sessions, Ctrl-C aborts the current
// line instead of killing the process.
type REPL struct {
	store *Store
	dir   string
	liner *liner.State
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".primitives_history")
}

// RunREPL loads dir's snapshot (if any), locks it for the session, and
// runs an interactive loop until the user exits, saving on the way out.
func RunREPL(dir string) error {
	session, err := lock.Acquire(dir, lock.DefaultTimeout)
	if err != nil {
		return err
	}

	defer session.Release()

	store, err := Load(dir)
	if err != nil {
		return err
	}

	r := &REPL{store: store, dir: dir}

	return r.run()
}

func (r *REPL) run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		_ = f.Close()
	}

	fmt.Println("primitives - intset/sds/dict REPL. Type 'help' for commands.")

	for {
		line, err := r.liner.Prompt("primitives> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println()
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		if r.dispatch(line) {
			break
		}
	}

	r.saveHistory()

	return Save(r.store, r.dir)
}

// dispatch runs one REPL line and reports whether the session should end.
func (r *REPL) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "exit", "quit", "q":
		fmt.Println("bye")
		return true
	case "help", "?":
		r.printHelp()
	case "ls":
		fmt.Println(strings.Join(r.store.names(), "\n"))
	case "save":
		if err := Save(r.store, r.dir); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	case "dump":
		text, err := DumpYAML(r.store)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			break
		}

		fmt.Print(text)
	case "intset":
		if err := runIntSet(r.store, args); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	case "sds":
		if err := runSDS(r.store, args); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	case "dict":
		if err := runDict(r.store, args); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	case "splitargs":
		if err := runSplitArgs(args); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	default:
		fmt.Printf("unknown command: %s (type 'help')\n", cmd)
	}

	return false
}

func (r *REPL) printHelp() {
	fmt.Print(`commands:
  intset <name> <add|remove|contains|slice|len> [value]
  sds <name> <set|append|get|len|upper|lower|trim> [value...]
  dict <name> <set|get|delete|len|keys> [key] [value...]
  splitargs <line>
  ls                 list every stored name
  dump               print the store as YAML
  save               write the snapshot now
  help               show this message
  exit               save and quit
`)
}

func (r *REPL) saveHistory() {
	path := historyFile()
	if path == "" {
		return
	}

	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return
	}

	defer f.Close()

	_, _ = r.liner.WriteHistory(f)
}

func (r *REPL) completer(line string) []string {
	options := []string{"intset", "sds", "dict", "splitargs", "ls", "dump", "save", "help", "exit"}

	var out []string

	for _, o := range options {
		if strings.HasPrefix(o, line) {
			out = append(out, o)
		}
	}

	return out
}
