package images

import (
	"bufio"
	"bytes"
	"image"
	"io"
	"math"
	"os"

	// Decoders for the accepted input formats.
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Interpolation is the resampling filter used for every resize. Lanczos-3
// trades speed for sharper, alias-free downscaling.
const Interpolation = resize.Lanczos3

// Resize decodes the image at path and fits it into a size x size box.
//
// Arguments:
//   - path: The image file to load (JPEG or PNG).
//   - size: The bounding-box edge in pixels, must be positive.
//
// Returns:
//   - *Raster: The resized image as packed RGB with its final dimensions.
//   - error: A KindInvalidSize or KindDecode *Error.
func Resize(path string, size int) (*Raster, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}

	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}

	return ResizeImage(img, size)
}

// ResizeBytes is Resize for an encoded image held in memory.
func ResizeBytes(data []byte, size int) (*Raster, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return ResizeImage(img, size)
}

// ResizeImage fits img into a size x size box with Interpolation and converts
// the result to RGB.
//
// The aspect ratio is preserved, so one side of the result may be shorter
// than size. Images smaller than the box are enlarged until one side fills it.
func ResizeImage(img image.Image, size int) (*Raster, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, errorf(KindDecode, "resize", "image is nil")
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errorf(KindDecode, "resize", "image has no pixels: %v", b)
	}

	b := img.Bounds()
	w, h := FitDimensions(b.Dx(), b.Dy(), size)
	if w == b.Dx() && h == b.Dy() {
		return ToRGB(img), nil
	}

	return ToRGB(resize.Resize(uint(w), uint(h), img, Interpolation)), nil
}

// FitDimensions scales w x h by the largest factor that keeps both sides
// within a size x size box. Sides are rounded to the nearest pixel and never
// drop below 1.
func FitDimensions(w, h, size int) (int, int) {
	ratio := math.Min(float64(size)/float64(w), float64(size)/float64(h))
	nw := max(1, int(math.Round(float64(w)*ratio)))
	nh := max(1, int(math.Round(float64(h)*ratio)))
	return nw, nh
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(KindDecode, "decode", path, err)
	}
	defer f.Close()

	img, err := Decode(bufio.NewReader(f))
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			e.Path = path
		}
		return nil, err
	}

	return img, nil
}

// Decode decodes a JPEG or PNG image from r.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, newError(KindDecode, "decode", "", err)
	}

	return img, nil
}

func checkSize(size int) error {
	if size <= 0 {
		return errorf(KindInvalidSize, "resize", "target size must be positive, got %d", size)
	}
	return nil
}
