// Package batch drives the resize-then-compress pipeline over every input
// image and target size, writing one JPEG per pair.
package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nvr-ai/go-thumbs/images"
	"github.com/nvr-ai/go-thumbs/profiler"
	"github.com/nvr-ai/go-thumbs/util"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	// DefaultOutputDir is where thumbnails are written when no directory is given.
	DefaultOutputDir = "./resized"
	// OutputExtension is the extension of every written file.
	OutputExtension = ".jpg"
	// outputPerm is the mode of written files.
	outputPerm = 0o644
	// dirPerm is the mode of a created output directory.
	dirPerm = 0o755
)

// Stage names recorded in the profiler.
const (
	StageResize   = "resize"
	StageCompress = "compress"
	StageWrite    = "write"
)

// DefaultSizes are the bounding-box edges used when no sizes are given.
var DefaultSizes = []int{1280, 640}

// Config describes one batch run.
type Config struct {
	// Target is an image file or a directory of images.
	Target string
	// OutputDir receives the thumbnails, it is created when absent.
	OutputDir string
	// Sizes are the bounding-box edges, each must be positive.
	Sizes []int
}

// Validate checks the sizes, that Target exists, and that OutputDir is not
// an existing non-directory.
func (c *Config) Validate() error {
	if len(c.Sizes) == 0 {
		return images.NewError(images.KindInvalidSize, "validate", "", errors.New("no target sizes given"))
	}
	for _, size := range c.Sizes {
		if size <= 0 {
			return images.NewError(images.KindInvalidSize, "validate", "",
				errors.Errorf("target size must be positive, got %d", size))
		}
	}

	if _, err := os.Stat(c.Target); err != nil {
		if os.IsNotExist(err) {
			return images.NewError(images.KindPathNotFound, "validate", c.Target, errors.New("target does not exist"))
		}
		return errors.Wrapf(err, "failed to stat target %s", c.Target)
	}

	info, err := os.Stat(c.OutputDir)
	switch {
	case err == nil && !info.IsDir():
		return images.NewError(images.KindNotADirectory, "validate", c.OutputDir, errors.New("output path is not a directory"))
	case err != nil && !os.IsNotExist(err):
		return errors.Wrapf(err, "failed to stat output directory %s", c.OutputDir)
	}

	return nil
}

// Summary lists what a run processed.
type Summary struct {
	// Inputs are the images that were read.
	Inputs []string
	// Outputs are the files that were written, in order.
	Outputs []string
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger for progress and debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithOutput sets where the "Resized" lines are printed.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithProfiler records stage timings into p.
func WithProfiler(p *profiler.Profiler) Option {
	return func(r *Runner) {
		r.profiler = p
	}
}

// Runner executes a Config. Work is strictly sequential: every (image, size)
// pair is resized, compressed and written before the next one starts, and
// the first failure ends the run.
type Runner struct {
	cfg      Config
	logger   *zap.Logger
	out      io.Writer
	profiler *profiler.Profiler
}

// New returns a Runner for cfg.
func New(cfg Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		logger:   zap.NewNop(),
		out:      os.Stdout,
		profiler: profiler.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates the config and processes every input.
//
// When no input matches, Run returns an empty summary without creating the
// output directory.
func (r *Runner) Run() (*Summary, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}

	paths, err := util.CollectImagePaths(r.cfg.Target)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	if len(paths) == 0 {
		r.logger.Debug("no images to resize", zap.String("target", r.cfg.Target))
		return summary, nil
	}

	if err := os.MkdirAll(r.cfg.OutputDir, dirPerm); err != nil {
		return summary, images.NewError(images.KindWrite, "mkdir", r.cfg.OutputDir, err)
	}

	for _, path := range paths {
		summary.Inputs = append(summary.Inputs, path)
		for _, size := range r.cfg.Sizes {
			out, err := r.process(path, size)
			if err != nil {
				return summary, err
			}
			summary.Outputs = append(summary.Outputs, out)
		}
	}

	return summary, nil
}

// process runs one (image, size) pair and returns the written path.
func (r *Runner) process(path string, size int) (string, error) {
	logger := r.logger.With(zap.String("path", path), zap.Int("size", size))

	done := r.profiler.StartOperation(StageResize)
	raster, err := images.Resize(path, size)
	done()
	if err != nil {
		return "", errors.Wrapf(err, "failed to resize image %s", path)
	}
	logger.Debug("resized", zap.Int("width", raster.Width), zap.Int("height", raster.Height))

	done = r.profiler.StartOperation(StageCompress)
	data, err := raster.Compress()
	done()
	if err != nil {
		return "", errors.Wrapf(err, "failed to compress image %s", path)
	}
	r.profiler.AddBytes(StageCompress, len(data))

	name := OutputName(path, size)
	dest := filepath.Join(r.cfg.OutputDir, name)

	done = r.profiler.StartOperation(StageWrite)
	err = writeFile(dest, data)
	done()
	if err != nil {
		return "", errors.Wrapf(err, "failed to write image %s", path)
	}

	fmt.Fprintf(r.out, "Resized %q\n", name)
	logger.Debug("wrote thumbnail", zap.String("dest", dest), zap.Int("bytes", len(data)))

	return dest, nil
}

// OutputName returns the thumbnail file name for path at size:
// "<stem>_<size>.jpg".
func OutputName(path string, size int) string {
	return util.Stem(path) + "_" + strconv.Itoa(size) + OutputExtension
}

// writeFile writes data to path, truncating any existing file.
func writeFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, outputPerm)
	if err != nil {
		return images.NewError(images.KindWrite, "write", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierr.Append(err, images.NewError(images.KindWrite, "close", path, cerr))
		}
	}()

	if _, err := f.Write(data); err != nil {
		return images.NewError(images.KindWrite, "write", path, err)
	}

	return nil
}
