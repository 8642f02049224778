package ui

import (
	"github.com/AllenDang/giu"
	"image"
	"image/color"
	"vincit.fi/quick-move/api/apitype"
)

var (
	thumbHoverOverlayColor = color.RGBA{R: 255, G: 255, B: 255, A: 64}
	thumbCurrentColor      = color.RGBA{R: 80, G: 140, B: 255, A: 255}
)

const (
	thumbMargin      = float32(8)
	thumbBorderWidth = 3
)

// ThumbStripWidget draws the thumbnails of the images around the current one
type ThumbStripWidget struct {
	images   []*apitype.ImageFile
	current  string
	height   float32
	textures *textureCache
	onClick  func(*apitype.ImageFile)
}

func ThumbStrip(textures *textureCache, onClick func(*apitype.ImageFile)) *ThumbStripWidget {
	return &ThumbStripWidget{
		images:   []*apitype.ImageFile{},
		textures: textures,
		onClick:  onClick,
	}
}

func (s *ThumbStripWidget) Height(height float32) *ThumbStripWidget {
	s.height = height
	return s
}

func (s *ThumbStripWidget) SetImages(images []*apitype.ImageFile, current *apitype.ImageFile) *ThumbStripWidget {
	s.images = images
	s.current = current.Path()
	return s
}

func (s *ThumbStripWidget) Build() {
	giu.Child().
		Layout(giu.Custom(func() {
			pos := giu.GetCursorScreenPos()
			canvas := giu.GetCanvas()
			mousePos := giu.GetMousePos()
			startX := float32(thumbBorderWidth)

			for _, imageFile := range s.images {
				img := s.textures.Get(imageFile.Path())
				if img == nil || img.size.IsEmpty() {
					continue
				}

				targetHeight := s.height - 2*thumbBorderWidth
				width := float32(img.size.Width()) / float32(img.size.Height()) * targetHeight

				start := image.Point{X: pos.X + int(startX), Y: pos.Y + thumbBorderWidth}
				end := image.Point{X: start.X + int(width), Y: start.Y + int(targetHeight)}
				startX += width + thumbMargin

				if imageFile.Path() == s.current {
					border := image.Point{X: thumbBorderWidth, Y: thumbBorderWidth}
					canvas.AddRectFilled(start.Sub(border), end.Add(border), thumbCurrentColor, 0, giu.DrawFlagsNone)
				}
				canvas.AddImage(img.texture, start, end)

				imgArea := image.Rectangle{Min: start, Max: end}
				if mousePos.In(imgArea) {
					giu.SetMouseCursor(giu.MouseCursorHand)
					if giu.IsMouseClicked(giu.MouseButtonLeft) {
						s.onClick(imageFile)
					}
					canvas.AddRectFilled(start, end, thumbHoverOverlayColor, 0, giu.DrawFlagsNone)
				}
			}
		})).
		Border(false).
		Size(giu.Auto, s.height).
		Flags(giu.WindowFlagsNoScrollbar | giu.WindowFlagsNoScrollWithMouse).
		Build()
}
