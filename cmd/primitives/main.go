// Command primitives is a small CLI and REPL over the intset, sds, and
// dict packages: a debugging and demonstration harness, not a server.
// It has no network listener and processes a single operation (or an
// interactive session) at a time against a snapshot directory on disk.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/dsprim/kvstructs/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("primitives", pflag.ContinueOnError)

	configPath := flags.StringP("config", "c", "", "path to a .primitives.json config file")
	dirFlag := flags.StringP("dir", "d", "", "snapshot directory override")
	format := flags.StringP("format", "f", "", "dump format override (json|yaml)")

	if err := flags.Parse(args); err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}

	cfg, err := config.Load(workDir, *configPath, os.Environ())
	if err != nil {
		return err
	}

	if *dirFlag != "" {
		cfg.SnapshotDir = *dirFlag
	}

	if *format != "" {
		cfg.Format = *format
	}

	hashSeed = cfg.HashSeed

	rest := flags.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: primitives <intset|sds|dict|splitargs|repl|save|config|dump> ...")
	}

	cmd, cmdArgs := rest[0], rest[1:]

	switch cmd {
	case "repl":
		return RunREPL(cfg.SnapshotDir)

	case "intset":
		store, err := Load(cfg.SnapshotDir)
		if err != nil {
			return err
		}

		if err := runIntSet(store, cmdArgs); err != nil {
			return err
		}

		return Save(store, cfg.SnapshotDir)

	case "sds":
		store, err := Load(cfg.SnapshotDir)
		if err != nil {
			return err
		}

		if err := runSDS(store, cmdArgs); err != nil {
			return err
		}

		return Save(store, cfg.SnapshotDir)

	case "dict":
		store, err := Load(cfg.SnapshotDir)
		if err != nil {
			return err
		}

		if err := runDict(store, cmdArgs); err != nil {
			return err
		}

		return Save(store, cfg.SnapshotDir)

	case "splitargs":
		return runSplitArgs(cmdArgs)

	case "save":
		store, err := Load(cfg.SnapshotDir)
		if err != nil {
			return err
		}

		return Save(store, cfg.SnapshotDir)

	case "dump":
		store, err := Load(cfg.SnapshotDir)
		if err != nil {
			return err
		}

		if cfg.Format == "yaml" {
			text, err := DumpYAML(store)
			if err != nil {
				return err
			}

			fmt.Print(text)

			return nil
		}

		snap := toSnapshot(store)

		return printJSON(snap)

	case "config":
		text, err := config.Format(cfg)
		if err != nil {
			return err
		}

		fmt.Println(text)

		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
