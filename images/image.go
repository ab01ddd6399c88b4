// Package images - decoding, resizing and JPEG compression of packed RGB rasters.
package images

// Channels is the number of bytes per pixel in a Raster.
const Channels = 3

// Raster is a tightly packed RGB image: 3 bytes per pixel, row-major, no
// padding between rows.
type Raster struct {
	// Pix holds the pixels, len(Pix) == Width*Height*Channels.
	Pix []byte `json:"-" yaml:"-"`
	// The width of the image.
	Width int `json:"width" yaml:"width"`
	// The height of the image.
	Height int `json:"height" yaml:"height"`
}

// NewRaster allocates a zeroed raster of the given dimensions.
func NewRaster(width, height int) *Raster {
	return &Raster{
		Pix:    make([]byte, width*height*Channels),
		Width:  width,
		Height: height,
	}
}

// Stride returns the number of bytes in one row.
func (r *Raster) Stride() int {
	return r.Width * Channels
}

// Validate checks the buffer length against the dimensions.
func (r *Raster) Validate() error {
	return checkLength("validate", len(r.Pix), r.Width, r.Height)
}

// Row returns row y as a slice of Pix. It returns nil when y is out of range
// or the buffer is too short to hold the row.
func (r *Raster) Row(y int) []byte {
	if y < 0 || y >= r.Height {
		return nil
	}
	start, end := y*r.Stride(), (y+1)*r.Stride()
	if end > len(r.Pix) {
		return nil
	}
	return r.Pix[start:end:end]
}

// Compress encodes the raster with DefaultEncoderConfig.
func (r *Raster) Compress() ([]byte, error) {
	return Compress(r.Pix, r.Width, r.Height)
}

func checkLength(op string, n, width, height int) error {
	if want := width * height * Channels; n != want {
		return errorf(KindSizeMismatch, op,
			"buffer holds %d bytes, %dx%d RGB needs %d", n, width, height, want)
	}
	return nil
}
