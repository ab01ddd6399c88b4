package images

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/pkg/errors"
)

// DefaultQuality is the JPEG quality (1-100) of every thumbnail.
const DefaultQuality = 70

// MaxDimension is the largest width or height a JPEG frame can carry.
const MaxDimension = 1<<16 - 1

// ColorSpace is the layout of the scanlines handed to a Compressor.
type ColorSpace int

// ColorSpace constants
const (
	// ColorSpaceRGB is 3 bytes per pixel, R then G then B.
	ColorSpaceRGB ColorSpace = iota
)

// ScanMode selects how color components are spread over the scans of the
// output stream.
type ScanMode int

// ScanMode constants
const (
	// ScanAllComponentsTogether writes a single baseline scan with every
	// component interleaved.
	ScanAllComponentsTogether ScanMode = iota
)

// EncoderConfig configures a Compressor.
type EncoderConfig struct {
	// Quality is the 1-100 JPEG quality.
	Quality int `json:"quality" yaml:"quality"`
	// ColorSpace of the input scanlines.
	ColorSpace ColorSpace `json:"colorSpace" yaml:"colorSpace"`
	// ScanMode of the output stream.
	ScanMode ScanMode `json:"scanMode" yaml:"scanMode"`
}

// DefaultEncoderConfig is the configuration used by Compress.
var DefaultEncoderConfig = EncoderConfig{
	Quality:    DefaultQuality,
	ColorSpace: ColorSpaceRGB,
	ScanMode:   ScanAllComponentsTogether,
}

// Validate checks that every setting is supported.
func (c EncoderConfig) Validate() error {
	if c.Quality < 1 || c.Quality > 100 {
		return errorf(KindEncode, "configure", "quality must be within 1-100, got %d", c.Quality)
	}
	if c.ColorSpace != ColorSpaceRGB {
		return errorf(KindEncode, "configure", "unsupported color space %d", c.ColorSpace)
	}
	if c.ScanMode != ScanAllComponentsTogether {
		return errorf(KindEncode, "configure", "unsupported scan mode %d", c.ScanMode)
	}
	return nil
}

// Compress encodes a packed RGB buffer as a JPEG with DefaultEncoderConfig.
//
// Arguments:
//   - pix: width*height*3 bytes of row-major RGB.
//   - width: The width of the image.
//   - height: The height of the image.
//
// Returns:
//   - []byte: The complete JPEG stream.
//   - error: KindSizeMismatch if pix has the wrong length, KindEncode if the
//     compressor cannot start or finish.
func Compress(pix []byte, width, height int) ([]byte, error) {
	return DefaultEncoderConfig.Compress(pix, width, height)
}

// Compress encodes a packed RGB buffer with c, one scanline at a time.
func (c EncoderConfig) Compress(pix []byte, width, height int) ([]byte, error) {
	if width < 0 || height < 0 {
		return nil, errorf(KindEncode, "compress", "invalid dimensions: %dx%d", width, height)
	}
	if err := checkLength("compress", len(pix), width, height); err != nil {
		return nil, err
	}

	comp, err := NewCompressor(c)
	if err != nil {
		return nil, err
	}
	if err := comp.Start(width, height); err != nil {
		return nil, err
	}

	stride := width * Channels
	for r := 0; r < height; r++ {
		if _, err := comp.WriteScanlines(pix[r*stride : (r+1)*stride]); err != nil {
			return nil, err
		}
	}

	return comp.Finish()
}

type compressorState int

const (
	stateIdle compressorState = iota
	stateStarted
	stateFinished
)

// Compressor builds a JPEG from scanlines submitted in order.
//
// Usage is Start, then WriteScanlines until every row is written, then
// Finish. A Compressor is single use and not safe for concurrent use.
type Compressor struct {
	cfg   EncoderConfig
	state compressorState
	frame *image.RGBA
	next  int
}

// NewCompressor returns an idle compressor.
func NewCompressor(cfg EncoderConfig) (*Compressor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Compressor{cfg: cfg}, nil
}

// Start sets the frame dimensions.
func (c *Compressor) Start(width, height int) error {
	if c.state != stateIdle {
		return errorf(KindEncode, "start", "compressor already started")
	}
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return errorf(KindEncode, "start", "invalid dimensions: %dx%d", width, height)
	}

	c.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	c.state = stateStarted
	return nil
}

// WriteScanlines appends rows to the frame. Each row must be exactly
// width*3 bytes. It returns the number of rows accepted before any error.
func (c *Compressor) WriteScanlines(rows ...[]byte) (int, error) {
	if c.state != stateStarted {
		return 0, errorf(KindEncode, "write scanline", "compressor is not started")
	}

	width, height := c.frame.Rect.Dx(), c.frame.Rect.Dy()
	for n, row := range rows {
		if c.next >= height {
			return n, errorf(KindEncode, "write scanline", "all %d rows already written", height)
		}
		if len(row) != width*Channels {
			return n, errorf(KindSizeMismatch, "write scanline",
				"row %d holds %d bytes, want %d", c.next, len(row), width*Channels)
		}

		dst := c.frame.Pix[c.next*c.frame.Stride:]
		for x := 0; x < width; x++ {
			dst[x*4+0] = row[x*3+0]
			dst[x*4+1] = row[x*3+1]
			dst[x*4+2] = row[x*3+2]
			dst[x*4+3] = 0xff
		}
		c.next++
	}

	return len(rows), nil
}

// Finish encodes the frame and returns the JPEG stream. Every row must have
// been written.
func (c *Compressor) Finish() ([]byte, error) {
	if c.state != stateStarted {
		return nil, errorf(KindEncode, "finish", "compressor is not started")
	}
	if height := c.frame.Rect.Dy(); c.next != height {
		return nil, errorf(KindEncode, "finish", "%d of %d rows written", c.next, height)
	}
	c.state = stateFinished

	var buf bytes.Buffer
	buf.Grow(len(c.frame.Pix) / 8)
	if err := jpeg.Encode(&buf, c.frame, &jpeg.Options{Quality: c.cfg.Quality}); err != nil {
		return nil, newError(KindEncode, "finish", "", errors.WithStack(err))
	}
	c.frame = nil

	return buf.Bytes(), nil
}
