package cmd

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/keyclick/keyclick/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Annotation colors. Web elements get their own box color so browser
// page content is distinguishable from native controls.
var (
	nativeBoxColor   = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	webBoxColor      = color.RGBA{R: 0, G: 180, B: 255, A: 255}
	hintTextColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	hintOutlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// annotateHints draws each hinted element's bounding box and hint label
// onto img. scale converts element points to image pixels; captures on
// Retina displays carry more pixels than points.
func annotateHints(img *image.RGBA, hinted []model.HintedElement, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	for _, h := range hinted {
		el := h.Element
		x := int(el.X * scale)
		y := int(el.Y * scale)
		w := int(el.Width * scale)
		ht := int(el.Height * scale)

		boxColor := nativeBoxColor
		if el.Origin == model.OriginWeb {
			boxColor = webBoxColor
		}
		drawRectangle(img, x, y, x+w, y+ht, boxColor)
		drawTextWithOutline(img, h.Hint, x+2, y+2, hintTextColor, hintOutlineColor)
	}
}

// imageToRGBA converts any decoded image to RGBA for drawing.
func imageToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

func isWithinBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawRectangle draws a one-pixel rectangle outline, clamped to the
// image bounds. Off-screen or empty rectangles are skipped.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}

	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x < x2; x++ {
		if isWithinBounds(bounds, x, y1) {
			img.Set(x, y1, c)
		}
		if isWithinBounds(bounds, x, y2-1) {
			img.Set(x, y2-1, c)
		}
	}

	for y := y1; y < y2; y++ {
		if isWithinBounds(bounds, x1, y) {
			img.Set(x1, y, c)
		}
		if isWithinBounds(bounds, x2-1, y) {
			img.Set(x2-1, y, c)
		}
	}
}

// drawTextWithOutline draws text anchored at the top-left corner (x, y),
// outlined in all eight directions so it stays readable on any
// background.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	// basicfont.Face7x13 has an 11px ascent.
	baseline := y + 11

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(outlineColor),
				Face: basicfont.Face7x13,
				Dot: fixed.Point26_6{
					X: fixed.Int26_6((x + dx) * 64),
					Y: fixed.Int26_6((baseline + dy) * 64),
				},
			}
			d.DrawString(text)
		}
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6(baseline * 64),
		},
	}
	d.DrawString(text)
}
