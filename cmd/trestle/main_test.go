package main

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "trestle dev") {
		t.Errorf("expected output to contain 'trestle dev', got: %s", out)
	}
	if !strings.Contains(out, "commit: none") {
		t.Errorf("expected output to contain 'commit: none', got: %s", out)
	}
}

func TestRootCmdHelp(t *testing.T) {
	cmd := newRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	out := buf.String()
	for _, sub := range []string{"serve", "schedule", "project", "import", "baseline", "db"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing %q subcommand:\n%s", sub, out)
		}
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"shunt"})

	if code := execute(cmd); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestParseDataDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2026-01-05T08:00:00Z", want: time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)},
		{in: "2026-01-05", want: time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)},
		{in: "yesterday", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseDataDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDataDate(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDataDate(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseDataDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
