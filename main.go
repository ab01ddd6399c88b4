package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nvr-ai/go-thumbs/batch"
	"github.com/nvr-ai/go-thumbs/images"
	"github.com/nvr-ai/go-thumbs/profiler"
	"github.com/nvr-ai/go-thumbs/util"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// options are the parsed command line.
type options struct {
	target    string
	directory string
	sizes     []int
	verbose   bool
	version   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, it returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	if opts.version {
		fmt.Fprintf(stdout, "thumbs %s\n", version)
		return exitOK
	}

	logger := util.NewLogger(stderr, opts.verbose)
	defer logger.Sync() //nolint:errcheck

	prof := profiler.New()
	runner := batch.New(batch.Config{
		Target:    opts.target,
		OutputDir: opts.directory,
		Sizes:     opts.sizes,
	},
		batch.WithLogger(logger),
		batch.WithOutput(stdout),
		batch.WithProfiler(prof),
	)

	summary, err := runner.Run()
	if err != nil {
		logger.Error(describe(err), zap.Error(err))
		return exitFailure
	}

	logger.Debug("batch finished",
		zap.Int("inputs", len(summary.Inputs)),
		zap.Int("outputs", len(summary.Outputs)),
	)
	prof.Report(logger)

	return exitOK
}

// parseArgs parses the flags and the single positional target.
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := pflag.NewFlagSet("thumbs", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: thumbs [flags] <target>\n\n")
		fmt.Fprintf(stderr, "Resize an image, or every jpg/jpeg/png image in a directory, to JPEG thumbnails.\n\n")
		fmt.Fprintf(stderr, "Flags:\n%s", fs.FlagUsages())
	}

	fs.StringVarP(&opts.directory, "directory", "d", batch.DefaultOutputDir, "The directory to store the output")
	fs.IntSliceVarP(&opts.sizes, "sizes", "s", append([]int(nil), batch.DefaultSizes...), "The sizes to resize the image to")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output and stage timings")
	fs.BoolVarP(&opts.version, "version", "V", false, "Print the version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.version {
		return opts, nil
	}

	switch fs.NArg() {
	case 1:
		opts.target = fs.Arg(0)
	case 0:
		fs.Usage()
		return nil, errors.New("missing target: the path to the image or directory to resize")
	default:
		fs.Usage()
		return nil, errors.Errorf("expected one target, got %d: %v", fs.NArg(), fs.Args())
	}

	return opts, nil
}

// describe returns the one-line summary logged for a failed run.
func describe(err error) string {
	switch images.KindOf(err) {
	case images.KindPathNotFound:
		return "The target does not exist"
	case images.KindNotADirectory:
		return "The output path is not a directory"
	case images.KindInvalidSize:
		return "Invalid target size"
	case images.KindDecode:
		return "Failed to resize image"
	case images.KindSizeMismatch, images.KindEncode:
		return "Failed to compress image"
	case images.KindWrite:
		return "Failed to write image"
	default:
		return "Resize failed"
	}
}
