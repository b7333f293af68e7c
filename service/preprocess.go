package service

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// receiptVariants derives the recognition pass inputs from a decoded receipt
// image. The order is fixed so first-seen deduplication in the merger stays
// deterministic:
//  1. equalized + denoised + adaptively thresholded grayscale
//  2. plain grayscale
//  3. untouched original
//  4. inverted grayscale (light text on dark receipts)
//  5. fixed-threshold binary
func receiptVariants(img image.Image) []image.Image {
	gray := imaging.Grayscale(img)
	denoised := imaging.Blur(gray, 0.7)
	enhanced := adaptiveThreshold(equalizeHistogram(denoised), 11, 2)
	inverted := imaging.Invert(gray)
	binary := fixedThreshold(gray, 127)

	return []image.Image{enhanced, gray, img, inverted, binary}
}

// equalizeHistogram spreads the tonal range of a grayscale image, which
// recovers text on washed-out photos.
func equalizeHistogram(src *image.NRGBA) *image.NRGBA {
	pixels := len(src.Pix) / 4
	if pixels == 0 {
		return src
	}

	var histogram [256]int
	for i := 0; i < len(src.Pix); i += 4 {
		histogram[src.Pix[i]]++
	}

	var lookup [256]uint8
	cumulative := 0
	for v := 0; v < 256; v++ {
		cumulative += histogram[v]
		lookup[v] = uint8(math.Round(float64(cumulative) * 255.0 / float64(pixels)))
	}

	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	for i := 0; i < len(dst.Pix); i += 4 {
		level := lookup[dst.Pix[i]]
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = level, level, level
	}
	return dst
}

// adaptiveThreshold binarizes against the mean of a block×block
// neighborhood minus delta, computed over an integral image. Handles uneven
// receipt lighting that a global threshold cannot.
func adaptiveThreshold(src *image.NRGBA, block, delta int) *image.NRGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	integral := make([]int, (w+1)*(h+1))
	for y := 0; y < h; y++ {
		rowSum := 0
		for x := 0; x < w; x++ {
			rowSum += int(src.Pix[src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)])
			integral[(y+1)*(w+1)+(x+1)] = integral[y*(w+1)+(x+1)] + rowSum
		}
	}

	radius := block / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := max(0, x-radius), max(0, y-radius)
			x1, y1 := min(w, x+radius+1), min(h, y+radius+1)
			area := (x1 - x0) * (y1 - y0)
			sum := integral[y1*(w+1)+x1] - integral[y0*(w+1)+x1] -
				integral[y1*(w+1)+x0] + integral[y0*(w+1)+x0]

			level := uint8(0)
			if int(src.Pix[src.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)])*area > sum-delta*area {
				level = 255
			}
			i := dst.PixOffset(x, y)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = level, level, level, 255
		}
	}
	return dst
}

// fixedThreshold binarizes at a global cutoff.
func fixedThreshold(src *image.NRGBA, cutoff uint8) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	for i := 0; i < len(dst.Pix); i += 4 {
		level := uint8(0)
		if dst.Pix[i] > cutoff {
			level = 255
		}
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2] = level, level, level
	}
	return dst
}
