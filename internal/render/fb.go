package render

import (
	"image"
	"image/color"

	fb "github.com/gonutz/framebuffer"
)

// FBDisplay shows a preview image on a Linux framebuffer device.
type FBDisplay struct {
	Device     string // e.g. /dev/fb0
	Background color.RGBA
	Logger     interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

// Show opens the device, letterboxes img onto it and closes the device again.
func (d FBDisplay) Show(img image.Image) error {
	dev, err := fb.Open(d.Device)
	if err != nil {
		if d.Logger != nil {
			d.Logger.Errorf("fb", "open %s failed: %v", d.Device, err)
		}
		return err
	}
	defer dev.Close()

	bounds := dev.Bounds()
	if d.Logger != nil {
		d.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}
	blit(dev, img, d.Background)
	return nil
}

type setter interface {
	Bounds() image.Rectangle
	Set(x, y int, c color.Color)
}

// blit writes src into dst with nearest-neighbor sampling, scaled to fit and
// centered, over an opaque background.
func blit(dst setter, src image.Image, bg color.RGBA) {
	db := dst.Bounds()
	sb := src.Bounds()
	if db.Empty() || sb.Empty() {
		return
	}
	// Fit inside dst, keeping the aspect ratio.
	w, h := db.Dx(), sb.Dy()*db.Dx()/sb.Dx()
	if h > db.Dy() {
		w, h = sb.Dx()*db.Dy()/sb.Dy(), db.Dy()
	}
	offX := db.Min.X + (db.Dx()-w)/2
	offY := db.Min.Y + (db.Dy()-h)/2

	for y := db.Min.Y; y < db.Max.Y; y++ {
		for x := db.Min.X; x < db.Max.X; x++ {
			px := bg
			if x >= offX && x < offX+w && y >= offY && y < offY+h {
				sx := sb.Min.X + (x-offX)*sb.Dx()/w
				sy := sb.Min.Y + (y-offY)*sb.Dy()/h
				px = over(color.RGBAModel.Convert(src.At(sx, sy)).(color.RGBA), bg)
			}
			dst.Set(x, y, px)
		}
	}
}

// over composites premultiplied c onto the opaque background bg.
func over(c, bg color.RGBA) color.RGBA {
	inv := 255 - uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) + uint32(bg.R)*inv/255),
		G: uint8(uint32(c.G) + uint32(bg.G)*inv/255),
		B: uint8(uint32(c.B) + uint32(bg.B)*inv/255),
		A: 0xFF,
	}
}
