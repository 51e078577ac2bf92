// Command ringslotctl formats, inspects, and drives a file-backed ring
// partition interactively, the same way the teacher's cmd/sloty drives a
// slotcache file.
//
// Usage:
//
//	ringslotctl new --byte-length N [options] <path>   Format a new partition file
//	ringslotctl <path> [options]                       Open an existing partition
//
// Options (all optional; defaults come from the config file, then
// DefaultConfig; --base always defaults to 0):
//
//	--base N            partition base address within the file
//	--stride N           slot size in bytes, header included
//	--little-endian      store the version header little-endian
//	--full-scan          use linear head recovery instead of binary
//	--config PATH        config file to load instead of .ringslotctl.json
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/aep/ringslot/pkg/ringslot"
	"github.com/aep/ringslot/pkg/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return fmt.Errorf("missing command or partition file path")
	}

	if os.Args[1] == "new" {
		return runNew(os.Args[2:])
	}

	return runOpen(os.Args[1:])
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  ringslotctl <partition-file>              Open an existing partition\n")
	fmt.Fprintf(os.Stderr, "  ringslotctl new --byte-length N <file>    Format a new partition\n")
	fmt.Fprintf(os.Stderr, "\nRun 'ringslotctl new --help' for formatting options.\n")
}

// layoutFlags binds the Options fields every subcommand shares.
type layoutFlags struct {
	base         uint32
	stride       uint32
	littleEndian bool
	fullScan     bool
	configPath   string
}

func bindLayoutFlags(fs *pflag.FlagSet, defaults Config) *layoutFlags {
	lf := &layoutFlags{}

	fs.Uint32Var(&lf.base, "base", 0, "partition base address within the file")
	fs.Uint32Var(&lf.stride, "stride", defaults.Stride, "slot size in bytes, header included")
	fs.BoolVar(&lf.littleEndian, "little-endian", defaults.LittleEndian, "store the version header little-endian")
	fs.BoolVar(&lf.fullScan, "full-scan", defaults.FullScan, "use linear head recovery instead of binary")
	fs.StringVar(&lf.configPath, "config", "", "config file to load instead of "+ConfigFileName)

	return lf
}

func (lf *layoutFlags) options() ringslot.Options {
	return ringslot.Options{
		BaseAddress:  lf.base,
		Stride:       lf.stride,
		LittleEndian: lf.littleEndian,
		FullScan:     lf.fullScan,
	}
}

func runNew(args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}

	// A first pass just to discover --config, so the real flag set's
	// defaults can come from the right file.
	peek := pflag.NewFlagSet("new-peek", pflag.ContinueOnError)
	peek.ParseErrorsWhitelist.UnknownFlags = true
	peekConfigPath := peek.String("config", "", "")
	_ = peek.Parse(args)

	cfg, _, err := LoadConfig(workDir, *peekConfigPath)
	if err != nil {
		return err
	}

	fs := pflag.NewFlagSet("new", pflag.ExitOnError)
	lf := bindLayoutFlags(fs, cfg)
	byteLength := fs.Uint32("byte-length", 0, "partition size in bytes (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ringslotctl new --byte-length N [options] <file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("missing partition file path")
	}

	if *byteLength == 0 {
		fs.Usage()
		return fmt.Errorf("--byte-length is required and must be non-zero")
	}

	path := fs.Arg(0)

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("partition file already exists: %s (use 'ringslotctl %s' to open it)", path, path)
	}

	s, err := store.CreateFile(path, *byteLength)
	if err != nil {
		return fmt.Errorf("creating partition file: %w", err)
	}
	defer s.Close()

	ctx := context.Background()
	opts := lf.options()

	if err := ringslot.Format(ctx, s, *byteLength, opts); err != nil {
		return fmt.Errorf("formatting: %w", err)
	}

	h, err := ringslot.Init(ctx, s, *byteLength, opts)
	if err != nil {
		return fmt.Errorf("opening freshly formatted partition: %w", err)
	}

	fmt.Printf("Created %s:\n", path)
	fmt.Printf("  byte length:    %d\n", *byteLength)
	fmt.Printf("  base address:   %d\n", opts.BaseAddress)
	fmt.Printf("  stride:         %d\n", opts.Stride)
	fmt.Printf("  slot count:     %d\n", h.SlotCount())
	fmt.Printf("  little-endian:  %v\n", opts.LittleEndian)
	fmt.Printf("  full-scan:      %v\n", opts.FullScan)
	fmt.Println()

	repl := &REPL{store: s, h: h}

	return repl.Run()
}

func runOpen(args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getwd: %w", err)
	}

	peek := pflag.NewFlagSet("open-peek", pflag.ContinueOnError)
	peek.ParseErrorsWhitelist.UnknownFlags = true
	peekConfigPath := peek.String("config", "", "")
	_ = peek.Parse(args)

	cfg, _, err := LoadConfig(workDir, *peekConfigPath)
	if err != nil {
		return err
	}

	fs := pflag.NewFlagSet("open", pflag.ExitOnError)
	lf := bindLayoutFlags(fs, cfg)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ringslotctl [options] <partition-file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("missing partition file path")
	}

	path := fs.Arg(0)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("partition file does not exist: %s (use 'ringslotctl new --byte-length N %s' to create it)", path, path)
	}

	opts := lf.options()

	byteLength := uint32(info.Size()) - opts.BaseAddress

	s, err := store.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening partition file: %w", err)
	}
	defer s.Close()

	ctx := context.Background()

	h, err := ringslot.Init(ctx, s, byteLength, opts)
	if err != nil {
		return fmt.Errorf("recovering head: %w", err)
	}

	repl := &REPL{store: s, h: h}

	return repl.Run()
}
