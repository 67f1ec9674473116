// Command texpack packs and unpacks texture channels from the command line.
//
// Usage:
//
//	texpack [-config file] [-v] <command> [flags] [args]
//
//	Commands:
//	  pack <files...>    combine the channels of several images into one EXR
//	  unpack <source>    split an image into per-channel greyscale EXRs
//	  check <source>     report channel usage and greyscale equivalence
//
// Defaults for the destination directories and the log level can be set in
// a texpack.toml file (see -config).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/texpack/texpack"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	global := flag.NewFlagSet("texpack", flag.ContinueOnError)
	configPath := global.String("config", "", "TOML config file (default texpack.toml if present)")
	verbose := global.Bool("v", false, "debug logging")
	global.Usage = func() { usage(global) }

	if err := global.Parse(args); err != nil {
		return 1
	}
	if global.NArg() == 0 {
		usage(global)
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "texpack:", err)
		return 1
	}

	level := parseLevel(cfg.LogLevel)
	if *verbose {
		level = slog.LevelDebug
	}
	texpack.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "pack":
		err = runPack(cfg, rest)
	case "unpack":
		err = runUnpack(cfg, rest)
	case "check":
		err = runCheck(rest)
	default:
		fmt.Fprintf(os.Stderr, "texpack: unknown command %q\n", cmd)
		usage(global)
		return 1
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "texpack:", err)
		return 1
	}
	return 0
}

func runPack(cfg config, args []string) error {
	fs := flag.NewFlagSet("pack", flag.ContinueOnError)
	dest := fs.String("dest", cfg.Destination, "destination directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	out, err := texpack.Pack(fs.Args(), *dest)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runUnpack(cfg config, args []string) error {
	fs := flag.NewFlagSet("unpack", flag.ContinueOnError)
	dest := fs.String("dest", cfg.UnpackDestination, "destination directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("unpack: want exactly one source file, got %d", fs.NArg())
	}
	written, err := texpack.Unpack(fs.Arg(0), *dest)
	if err != nil {
		return err
	}
	for _, p := range written {
		fmt.Println(p)
	}
	return nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("check: want exactly one source file, got %d", fs.NArg())
	}

	img, err := texpack.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	stats, err := texpack.Stats(img)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %dx%d, %d channels\n", fs.Arg(0), img.Width(), img.Height(), img.NumChannels())
	fmt.Printf("%-20s %-6s %12s %12s %12s\n", "channel", "used", "min", "max", "mean")
	for _, s := range stats {
		fmt.Printf("%-20s %-6t %12.5g %12.5g %12.5g\n", s.Name, s.Used, s.Min, s.Max, s.Mean)
	}
	if texpack.IsGreyscale(img) {
		fmt.Println("greyscale-equivalent: yes (R, G and B match)")
	} else {
		fmt.Println("greyscale-equivalent: no")
	}
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, `usage: texpack [-config file] [-v] <command> [flags] [args]

commands:
  pack <files...>   combine the channels of several images into one EXR
                    (-dest directory, default from config or out/)
  unpack <source>   split an image into per-channel greyscale EXRs
                    (-dest directory, default from config or out/unpacked/)
  check <source>    report channel usage and greyscale equivalence

global flags:`)
	fs.PrintDefaults()
}
