// Package preprocess conditions photographed documents for OCR.
package preprocess

import (
	"fmt"
	"image"
	"io"

	"scan-qa/pkg/config"
	"scan-qa/pkg/models"

	"github.com/disintegration/imaging"
)

// Preprocessor turns a photo into a binarized image ready for recognition
type Preprocessor struct {
	cfg config.PreprocessConfig
}

// New creates a preprocessor, filling unset options with defaults
func New(cfg config.PreprocessConfig) *Preprocessor {
	def := config.Default().Preprocess
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = def.MaxWidth
	}
	if cfg.BlockSize < 3 {
		cfg.BlockSize = def.BlockSize
	}
	if cfg.CloseSize <= 0 {
		cfg.CloseSize = def.CloseSize
	}
	if cfg.ThumbnailWidth <= 0 {
		cfg.ThumbnailWidth = def.ThumbnailWidth
	}
	return &Preprocessor{cfg: cfg}
}

// Load opens an image from disk, honouring EXIF orientation
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, models.NewError(models.KindImage, "open "+path, fmt.Errorf("%w: %v", models.ErrImageLoad, err))
	}
	return img, nil
}

// Decode reads an image from r, honouring EXIF orientation
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, models.NewError(models.KindImage, "decode upload", fmt.Errorf("%w: %v", models.ErrImageLoad, err))
	}
	return img, nil
}

// Process resizes, converts to grayscale, denoises, thresholds and closes src
func (p *Preprocessor) Process(src image.Image) *image.NRGBA {
	img := imaging.Clone(src)

	// 1. Downscale wide phone photos
	if img.Bounds().Dx() > p.cfg.MaxWidth {
		img = imaging.Resize(img, p.cfg.MaxWidth, 0, imaging.Box)
	}

	// 2. Grayscale
	img = imaging.Grayscale(img)

	// 3. Gaussian blur to remove sensor noise
	img = imaging.Blur(img, p.cfg.BlurSigma)

	// 4. Adaptive threshold against the local gaussian-weighted mean
	mean := imaging.Blur(img, blockSigma(p.cfg.BlockSize))
	binary := adaptiveThreshold(img, mean, p.cfg.Offset)

	// 5. Morphological closing
	return closing(binary, p.cfg.CloseSize)
}

// Thumbnail creates a cropped and enhanced display version of the document
func (p *Preprocessor) Thumbnail(src image.Image) *image.NRGBA {
	width := src.Bounds().Dx()
	height := src.Bounds().Dy()

	// trim 5% on each side, where the photo background usually is
	mx := int(float64(width) * 0.05)
	my := int(float64(height) * 0.05)
	img := imaging.Crop(src, image.Rect(mx, my, width-mx, height-my))

	img = imaging.AdjustContrast(img, 20)
	img = imaging.Sharpen(img, 1.0)
	img = imaging.AdjustBrightness(img, 5)

	limit := p.cfg.ThumbnailWidth
	if img.Bounds().Dx() > limit || img.Bounds().Dy() > limit {
		img = imaging.Fit(img, limit, limit, imaging.Lanczos)
	}
	return img
}

// blockSigma derives the gaussian sigma for a square window of size k
func blockSigma(k int) float64 {
	return 0.3*(float64(k-1)*0.5-1) + 0.8
}

// adaptiveThreshold sets a pixel white when it is brighter than its local mean minus offset
func adaptiveThreshold(img, mean *image.NRGBA, offset int) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	for i := 0; i+3 < len(img.Pix); i += 4 {
		v := uint8(0)
		if int(img.Pix[i]) > int(mean.Pix[i])-offset {
			v = 255
		}
		out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = v, v, v, 255
	}
	return out
}
