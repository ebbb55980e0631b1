package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dsprim/kvstructs/sds"
)

// runIntSet dispatches `primitives intset <name> <op> [args...]`.
func runIntSet(s *Store, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: primitives intset <name> <add|remove|contains|slice> [value]")
	}

	name, op, rest := args[0], args[1], args[2:]

	set, err := s.intSet(name, op == "add")
	if err != nil {
		return err
	}

	switch op {
	case "add":
		v, err := parseValue(rest)
		if err != nil {
			return err
		}

		fmt.Println(set.Add(v))
	case "remove":
		v, err := parseValue(rest)
		if err != nil {
			return err
		}

		fmt.Println(set.Remove(v))
	case "contains":
		v, err := parseValue(rest)
		if err != nil {
			return err
		}

		fmt.Println(set.Contains(v))
	case "slice":
		fmt.Println(intsToString(set.Slice()))
	case "len":
		fmt.Println(set.Len())
	default:
		return fmt.Errorf("intset: unknown operation %q", op)
	}

	return nil
}

func parseValue(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one integer value")
	}

	return strconv.ParseInt(args[0], 10, 64)
}

func intsToString(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// runSDS dispatches `primitives sds <name> <op> [args...]`.
func runSDS(s *Store, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: primitives sds <name> <append|get|len|upper|lower|trim> [value]")
	}

	name, op, rest := args[0], args[1], args[2:]

	create := op == "append" || op == "set"

	str, err := s.sdsVal(name, create)
	if err != nil {
		return err
	}

	switch op {
	case "set":
		str.CopyBytes([]byte(strings.Join(rest, " ")))
	case "append":
		str.AppendBytes([]byte(strings.Join(rest, " ")))
	case "get":
		fmt.Println(str.String())
	case "len":
		fmt.Println(str.Len())
	case "upper":
		str.ToUpper()
	case "lower":
		str.ToLower()
	case "trim":
		cset := " \t\n"
		if len(rest) > 0 {
			cset = rest[0]
		}

		str.Trim([]byte(cset))
	default:
		return fmt.Errorf("sds: unknown operation %q", op)
	}

	return nil
}

// runDict dispatches `primitives dict <name> <op> [args...]`.
func runDict(s *Store, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: primitives dict <name> <set|get|delete|len|keys> [key] [value]")
	}

	name, op, rest := args[0], args[1], args[2:]

	d, err := s.dictVal(name, op == "set")
	if err != nil {
		return err
	}

	switch op {
	case "set":
		if len(rest) < 2 {
			return fmt.Errorf("dict set: expected <key> <value>")
		}

		d.Replace(rest[0], strings.Join(rest[1:], " "))
	case "get":
		if len(rest) != 1 {
			return fmt.Errorf("dict get: expected <key>")
		}

		v, ok := d.Find(rest[0])
		if !ok {
			return fmt.Errorf("dict %q: key %q: %w", name, rest[0], errNotFound)
		}

		fmt.Println(v)
	case "delete":
		if len(rest) != 1 {
			return fmt.Errorf("dict delete: expected <key>")
		}

		fmt.Println(d.Delete(rest[0]))
	case "len":
		fmt.Println(d.Len())
	case "keys":
		it := d.Iterator()

		var keys []string

		for {
			k, _, ok := it.Next()
			if !ok {
				break
			}

			keys = append(keys, k.(string))
		}

		it.Release()
		fmt.Println(strings.Join(keys, " "))
	default:
		return fmt.Errorf("dict: unknown operation %q", op)
	}

	return nil
}

// runSplitArgs dispatches `primitives splitargs <line>`, exposing
// sds.SplitArgs as a standalone tokenizer, mirroring redis-cli's own
// split-args debug helper.
func runSplitArgs(args []string) error {
	line := strings.Join(args, " ")

	tokens, err := sds.SplitArgs(line)
	if err != nil {
		return err
	}

	for _, t := range tokens {
		fmt.Println(t.String())
	}

	return nil
}
