package imageloader

import (
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/rwcarlsen/goexif/exif"
	"image"
	"image/draw"
	"os"
	"time"
	"vincit.fi/quick-move/api/apitype"
	"vincit.fi/quick-move/common/logger"
)

const (
	thumbnailWidth  = 100
	thumbnailHeight = thumbnailWidth
)

var thumbnailSize = apitype.SizeOf(thumbnailWidth, thumbnailHeight)

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// LoadFull decodes the image and applies the EXIF orientation
func (s *Loader) LoadFull(path string) (image.Image, error) {
	startTime := time.Now()
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	if logger.IsLogLevel(logger.TRACE) {
		logger.Trace.Printf("'%s' loaded in %s", path, time.Since(startTime))
	}
	return img, nil
}

func (s *Loader) Scale(full image.Image, size apitype.Size) image.Image {
	return imaging.Fit(full, size.Width(), size.Height(), imaging.Linear)
}

func (s *Loader) Thumbnail(full image.Image) image.Image {
	return resize.Thumbnail(uint(thumbnailSize.Width()), uint(thumbnailSize.Height()), full, resize.Bilinear)
}

// CaptureTime returns the EXIF capture time of the image
func (s *Loader) CaptureTime(path string) (time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer file.Close()

	decoded, err := exif.Decode(file)
	if err != nil {
		return time.Time{}, err
	}
	return decoded.DateTime()
}

// ToRgba converts the image to the pixel format textures are made of
func ToRgba(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}
