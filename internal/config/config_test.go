package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Raimguzhinov/pnmstretch/internal/stretch"
)

func TestParsePositional(t *testing.T) {
	opts, err := Parse([]string{"4", "in.pgm", "out.pgm", "0.05"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if opts.Args.Threads != 4 || opts.Args.Input != "in.pgm" || opts.Args.Output != "out.pgm" || opts.Args.Threshold != 0.05 {
		t.Fatalf("args = %+v", opts.Args)
	}
	if opts.TailMode != "pooled" || opts.LogLevel != "info" || opts.PreviewSize != 1024 {
		t.Fatalf("defaults = tail %q, log %q, preview %d", opts.TailMode, opts.LogLevel, opts.PreviewSize)
	}
	so := opts.StretchOptions()
	if so.Workers != 4 || so.Threshold != 0.05 || so.Tail != stretch.TailPooled {
		t.Fatalf("stretch options = %+v", so)
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := Parse([]string{"-s", "--tail-mode", "any", "-e", "out.png", "--log-level=debug", "0", "a.ppm", "b.ppm", "0"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !opts.Show || opts.Export != "out.png" || opts.LogLevel != "debug" {
		t.Fatalf("opts = %+v", opts)
	}
	if opts.Tail() != stretch.TailAnyChannel {
		t.Fatalf("tail = %v", opts.Tail())
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{name: "missing positional", args: []string{"4", "in.pgm"}},
		{name: "non numeric threads", args: []string{"many", "in.pgm", "out.pgm", "0.1"}},
		{name: "non numeric threshold", args: []string{"2", "in.pgm", "out.pgm", "tenth"}},
		{name: "threshold out of range", args: []string{"2", "in.pgm", "out.pgm", "1.5"}},
		{name: "bad tail mode", args: []string{"--tail-mode=median", "2", "in.pgm", "out.pgm", "0.1"}},
		{name: "extra args", args: []string{"2", "in.pgm", "out.pgm", "0.1", "more"}},
		{name: "export format", args: []string{"-e", "out.jpg", "2", "in.pgm", "out.pgm", "0.1"}},
		{name: "zero preview", args: []string{"--preview-size=0", "2", "in.pgm", "out.pgm", "0.1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.args); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestParseHelpWithoutArgs(t *testing.T) {
	opts, err := Parse([]string{"-h"})
	if err == nil {
		t.Fatal("expected missing positional error")
	}
	if !opts.Help {
		t.Fatal("help flag not recorded")
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("PNMSTRETCH_TAIL_MODE", "any")
	t.Setenv("PNMSTRETCH_LOG_LEVEL", "warn")

	opts, err := Parse([]string{"1", "in.pgm", "out.pgm", "0.1"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if opts.TailMode != "any" || opts.LogLevel != "warn" {
		t.Fatalf("env not applied: tail %q, log %q", opts.TailMode, opts.LogLevel)
	}

	opts, err = Parse([]string{"--log-level=error", "1", "in.pgm", "out.pgm", "0.1"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if opts.LogLevel != "error" {
		t.Fatalf("command line did not override env: %q", opts.LogLevel)
	}
}

func TestParseIniFile(t *testing.T) {
	t.Setenv("PNMSTRETCH_LOG_LEVEL", "warn")
	path := filepath.Join(t.TempDir(), "pnmstretch.ini")
	ini := "[Application Options]\ntail-mode = any\nlog-level = debug\npreview-size = 512\n"
	if err := os.WriteFile(path, []byte(ini), 0o644); err != nil {
		t.Fatalf("write ini: %v", err)
	}

	opts, err := Parse([]string{"-c", path, "--preview-size", "256", "2", "in.pgm", "out.pgm", "0.1"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if opts.TailMode != "any" {
		t.Errorf("tail mode = %q, want any from ini", opts.TailMode)
	}
	if opts.LogLevel != "debug" {
		t.Errorf("log level = %q, ini should override env", opts.LogLevel)
	}
	if opts.PreviewSize != 256 {
		t.Errorf("preview size = %d, command line should override ini", opts.PreviewSize)
	}
}

func TestParseMissingIniFile(t *testing.T) {
	_, err := Parse([]string{"-c", filepath.Join(t.TempDir(), "none.ini"), "2", "in.pgm", "out.pgm", "0.1"})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}
