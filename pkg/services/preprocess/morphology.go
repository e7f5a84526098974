package preprocess

import "image"

// closing dilates then erodes a grayscale image with a size x size square
func closing(img *image.NRGBA, size int) *image.NRGBA {
	if size <= 1 {
		return img
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	plane := make([]uint8, w*h)
	for i := range plane {
		plane[i] = img.Pix[i*4]
	}

	r := size / 2
	plane = rankFilter(plane, w, h, r, true)
	plane = rankFilter(plane, w, h, r, false)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, v := range plane {
		out.Pix[i*4], out.Pix[i*4+1], out.Pix[i*4+2], out.Pix[i*4+3] = v, v, v, 255
	}
	return out
}

// rankFilter applies a separable max (dilate) or min (erode) over a square
// window of radius r. Pixels outside the image are ignored.
func rankFilter(plane []uint8, w, h, r int, dilate bool) []uint8 {
	pick := func(a, b uint8) uint8 {
		if (dilate && b > a) || (!dilate && b < a) {
			return b
		}
		return a
	}

	tmp := make([]uint8, len(plane))
	for y := 0; y < h; y++ {
		row := plane[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			v := row[x]
			for dx := -r; dx <= r; dx++ {
				if xx := x + dx; xx >= 0 && xx < w {
					v = pick(v, row[xx])
				}
			}
			tmp[y*w+x] = v
		}
	}

	out := make([]uint8, len(plane))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := tmp[y*w+x]
			for dy := -r; dy <= r; dy++ {
				if yy := y + dy; yy >= 0 && yy < h {
					v = pick(v, tmp[yy*w+x])
				}
			}
			out[y*w+x] = v
		}
	}
	return out
}
