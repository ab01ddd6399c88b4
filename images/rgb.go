package images

import (
	"image"
	"image/color"
)

// ToRGB converts img to a packed RGB raster. Alpha is dropped without
// compositing: the straight (non-premultiplied) color values are kept.
// Paletted and gray images are expanded to three channels.
func ToRGB(img image.Image) *Raster {
	b := img.Bounds()
	dst := NewRaster(b.Dx(), b.Dy())

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < dst.Height; y++ {
			row := dst.Row(y)
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < dst.Width; x++ {
				row[x*3+0] = src.Pix[i+0]
				row[x*3+1] = src.Pix[i+1]
				row[x*3+2] = src.Pix[i+2]
				i += 4
			}
		}
	case *image.RGBA:
		for y := 0; y < dst.Height; y++ {
			row := dst.Row(y)
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < dst.Width; x++ {
				r, g, bl, a := src.Pix[i+0], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3]
				row[x*3+0] = unpremultiply(r, a)
				row[x*3+1] = unpremultiply(g, a)
				row[x*3+2] = unpremultiply(bl, a)
				i += 4
			}
		}
	case *image.YCbCr:
		for y := 0; y < dst.Height; y++ {
			row := dst.Row(y)
			for x := 0; x < dst.Width; x++ {
				yi := src.YOffset(b.Min.X+x, b.Min.Y+y)
				ci := src.COffset(b.Min.X+x, b.Min.Y+y)
				r, g, bl := color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
				row[x*3+0], row[x*3+1], row[x*3+2] = r, g, bl
			}
		}
	case *image.Gray:
		for y := 0; y < dst.Height; y++ {
			row := dst.Row(y)
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < dst.Width; x++ {
				v := src.Pix[i+x]
				row[x*3+0], row[x*3+1], row[x*3+2] = v, v, v
			}
		}
	default:
		for y := 0; y < dst.Height; y++ {
			row := dst.Row(y)
			for x := 0; x < dst.Width; x++ {
				c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				row[x*3+0], row[x*3+1], row[x*3+2] = c.R, c.G, c.B
			}
		}
	}

	return dst
}

// unpremultiply recovers the straight value of an alpha-premultiplied channel
// with the same 16-bit arithmetic as color.NRGBAModel.
func unpremultiply(v, a uint8) uint8 {
	switch a {
	case 0xff:
		return v
	case 0:
		return 0
	}
	if v >= a {
		return 0xff
	}
	return uint8((uint32(v) * 0xffff / uint32(a)) >> 8)
}
