package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ironsheep/textract/internal/config"
	"github.com/ironsheep/textract/internal/extract"
	"github.com/ironsheep/textract/internal/imaging"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitInput  = 2
	exitOutput = 3
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "textract - isolate printed glyphs and binarize them for OCR")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: textract run [options] <input> <output>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -config FILE      YAML parameter file")
	fmt.Fprintln(w, "  -debug-dir DIR    Also write edges.png, processed.png and rejected.png")
	fmt.Fprintln(w, "  -v                Debug logging")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  --version         Print version information")
	fmt.Fprintln(w, "  --help, -h        Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status: 0 ok, 1 usage or other failure, 2 unreadable input, 3 output not written.")
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitFailed
	}

	switch args[0] {
	case "--version", "version":
		fmt.Fprintf(stdout, "textract %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return exitOK
	case "--help", "-h", "help":
		usage(stdout)
		return exitOK
	case "run":
		return runExtract(args[1:], stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return exitFailed
	}
}

func runExtract(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML parameter file")
	debugDir := fs.String("debug-dir", "", "directory for debug images")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return exitFailed
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "run: expected <input> <output>")
		return exitFailed
	}
	in, out := fs.Arg(0), fs.Arg(1)

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			log.Error().Err(err).Msg("load config")
			return exitFailed
		}
	}
	if *debugDir != "" {
		cfg.Debug.Dir = *debugDir
	}

	log.Debug().Str("version", Version).Str("commit", GitCommit).Msg("textract starting")

	if _, err := extract.New(cfg, nil, log.Logger).Run(in, out); err != nil {
		log.Error().Err(err).Msg("extract failed")
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	var inErr *imaging.InputError
	var outErr *imaging.OutputError
	switch {
	case errors.As(err, &inErr):
		return exitInput
	case errors.As(err, &outErr):
		return exitOutput
	default:
		return exitFailed
	}
}
