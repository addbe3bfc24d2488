package snapshot

import (
	"image"
	"math"

	"github.com/gogpu/fx/internal/cache"
)

// gaussianKernel returns a normalized 1D kernel with sigma equal to
// radius, matching the CSS blur() length. It spans 3 sigma on each side.
func gaussianKernel(radius float64) []float32 {
	if radius <= 0 {
		return []float32{1}
	}
	half := int(math.Ceil(radius * 3))
	kernel := make([]float32, half*2+1)
	twoSigmaSq := 2 * radius * radius
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// kernels maps a radius in hundredths of a pixel to its kernel.
var kernels = cache.NewSharded[int, []float32](16, cache.IntHasher)

// cachedKernel returns the kernel for radius rounded to 0.01px.
func cachedKernel(radius float64) []float32 {
	key := int(math.Round(radius * 100))
	return kernels.GetOrCreate(key, func() []float32 {
		return gaussianKernel(float64(key) / 100)
	})
}

// blur applies a separable Gaussian blur to img in place. Pixels past
// the edges repeat the nearest edge pixel.
func blur(img *image.RGBA, radius float64) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if radius <= 0 || w == 0 || h == 0 {
		return
	}
	kernel := cachedKernel(radius)
	temp := make([]float32, w*h*4)
	blurRows(img, temp, w, h, kernel)
	blurColumns(temp, img, w, h, kernel)
}

func blurRows(src *image.RGBA, temp []float32, w, h int, kernel []float32) {
	half := len(kernel) / 2
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				kx := clampInt(x+k-half, 0, w-1) * 4
				r += float32(row[kx+0]) * weight
				g += float32(row[kx+1]) * weight
				b += float32(row[kx+2]) * weight
				a += float32(row[kx+3]) * weight
			}
			i := (y*w + x) * 4
			temp[i+0], temp[i+1], temp[i+2], temp[i+3] = r, g, b, a
		}
	}
}

func blurColumns(temp []float32, dst *image.RGBA, w, h int, kernel []float32) {
	half := len(kernel) / 2
	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				i := (clampInt(y+k-half, 0, h-1)*w + x) * 4
				r += temp[i+0] * weight
				g += temp[i+1] * weight
				b += temp[i+2] * weight
				a += temp[i+3] * weight
			}
			o := x * 4
			row[o+0] = clampUint8(r)
			row[o+1] = clampUint8(g)
			row[o+2] = clampUint8(b)
			row[o+3] = clampUint8(a)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
