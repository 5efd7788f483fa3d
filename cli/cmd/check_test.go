package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestCheckRun(t *testing.T) {
	var (
		cli struct {
			Check Check `cmd:""`
		}
		out bytes.Buffer
	)

	ctx := parseCommand(t, &cli, &out, nil, "check")

	if err := cli.Check.Run(ctx); err != nil {
		t.Fatalf("Check.Run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")

	want := [][]string{
		{"ID", "FLAGS", "ARITY", "DELIMITER"},
		{"nodes", "--list|-l", "multi", "','"},
		{"start", "--start|-s", "none", "-"},
		{},
		{"RULE", "EXPR"},
		{"start-needs-nodes", `follows("start",`, `"nodes")`},
		{"no-free-values", "len(free)", "==", "0"},
	}

	if len(lines) != len(want) {
		t.Fatalf("Check.Run() wrote %d lines, want %d:\n%s", len(lines), len(want), out.String())
	}

	for i, fields := range want {
		got := strings.Fields(lines[i])
		if strings.Join(got, " ") != strings.Join(fields, " ") {
			t.Errorf("line %d = %q, want fields %q", i, lines[i], fields)
		}
	}
}

func TestCheckRunQuiet(t *testing.T) {
	var (
		cli struct {
			Check Check `cmd:""`
		}
		out bytes.Buffer
	)

	ctx := parseCommand(t, &cli, &out, nil, "check", "--quiet")

	if err := cli.Check.Run(ctx); err != nil {
		t.Fatalf("Check.Run() error = %v", err)
	}

	if out.Len() != 0 {
		t.Errorf("Check.Run() with --quiet wrote %q", out.String())
	}
}
