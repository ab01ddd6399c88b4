package images

// ImageFormat represents supported input image formats.
type ImageFormat string

// ImageFormat constants
const (
	// FormatJPEG is the JPEG image format.
	FormatJPEG ImageFormat = "jpeg"
	// FormatPNG is the PNG image format.
	FormatPNG ImageFormat = "png"
)

// extensions maps accepted file extensions to their format. Matching is
// case-sensitive: "JPG" is not accepted.
var extensions = map[string]ImageFormat{
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"png":  FormatPNG,
}

// FormatFromExtension resolves a file extension, given without the leading
// dot, to an input format.
func FormatFromExtension(ext string) (ImageFormat, bool) {
	f, ok := extensions[ext]
	return f, ok
}
