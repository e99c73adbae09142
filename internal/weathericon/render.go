package weathericon

import (
	"bytes"
	"log/slog"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Size is the edge length of the rendered tray icon in pixels.
const Size = 64

var labelFace font.Face

func init() {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		// goregular.TTF is embedded; failing to parse it is a build problem.
		panic(err)
	}
	labelFace = truetype.NewFace(f, &truetype.Options{
		Size:    17,
		Hinting: font.HintingFull,
	})
}

// Render draws the icon for the given condition with the label (typically
// the temperature) overlaid near the bottom, and returns PNG bytes. Output
// is deterministic for a given (kind, label) pair.
func Render(kind Kind, label string) []byte {
	dc := gg.NewContext(Size, Size)

	drawGlyph(dc, kind)
	drawLabel(dc, label)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		slog.Warn("icon encoding failed", "error", err)
		return nil
	}
	return buf.Bytes()
}

func drawGlyph(dc *gg.Context, kind Kind) {
	switch kind {
	case Clear:
		drawSun(dc, 32, 24, 12)
	case FewClouds:
		drawSun(dc, 24, 18, 9)
		drawCloud(dc, 38, 26, 0.8, "#e8eaed")
	case Overcast:
		drawCloud(dc, 32, 22, 1, "#9aa0a6")
	case Showers:
		drawCloud(dc, 32, 18, 0.9, "#9aa0a6")
		drawRain(dc)
	case Snow:
		drawCloud(dc, 32, 18, 0.9, "#bdc1c6")
		drawFlakes(dc)
	case Storm:
		drawCloud(dc, 32, 16, 0.9, "#5f6368")
		drawBolt(dc)
	default:
		drawAlert(dc)
	}
}

func drawSun(dc *gg.Context, cx, cy, r float64) {
	dc.SetHexColor("#f9c22b")
	dc.SetLineWidth(2.5)
	for i := 0; i < 8; i++ {
		a := float64(i) * gg.Radians(45)
		dc.DrawLine(cx+(r+3)*math.Cos(a), cy+(r+3)*math.Sin(a), cx+(r+8)*math.Cos(a), cy+(r+8)*math.Sin(a))
	}
	dc.Stroke()
	dc.DrawCircle(cx, cy, r)
	dc.Fill()
}

func drawCloud(dc *gg.Context, cx, cy, scale float64, hex string) {
	dc.SetHexColor(hex)
	dc.DrawCircle(cx-10*scale, cy+3*scale, 8*scale)
	dc.DrawCircle(cx, cy-3*scale, 11*scale)
	dc.DrawCircle(cx+11*scale, cy+3*scale, 8*scale)
	dc.DrawRectangle(cx-10*scale, cy+3*scale, 21*scale, 8*scale)
	dc.Fill()
}

func drawRain(dc *gg.Context) {
	dc.SetHexColor("#4a90d9")
	dc.SetLineWidth(2.5)
	for _, x := range []float64{22, 32, 42} {
		dc.DrawLine(x, 32, x-4, 42)
	}
	dc.Stroke()
}

func drawFlakes(dc *gg.Context) {
	dc.SetHexColor("#ffffff")
	for _, x := range []float64{22, 32, 42} {
		dc.DrawCircle(x, 37, 2.8)
	}
	dc.Fill()
}

func drawBolt(dc *gg.Context) {
	dc.SetHexColor("#f9c22b")
	dc.MoveTo(34, 24)
	dc.LineTo(26, 37)
	dc.LineTo(32, 37)
	dc.LineTo(28, 47)
	dc.LineTo(39, 33)
	dc.LineTo(33, 33)
	dc.LineTo(38, 24)
	dc.ClosePath()
	dc.Fill()
}

func drawAlert(dc *gg.Context) {
	dc.SetHexColor("#f58220")
	dc.MoveTo(32, 8)
	dc.LineTo(50, 40)
	dc.LineTo(14, 40)
	dc.ClosePath()
	dc.Fill()

	dc.SetHexColor("#ffffff")
	dc.DrawRectangle(30, 17, 4, 12)
	dc.Fill()
	dc.DrawCircle(32, 34, 2.5)
	dc.Fill()
}

func drawLabel(dc *gg.Context, label string) {
	if label == "" {
		return
	}
	dc.SetFontFace(labelFace)
	w, _ := dc.MeasureString(label)
	x := float64(Size)/2 - w/2
	y := float64(Size) - 4

	// Shadow first for contrast against light tray backgrounds.
	dc.SetRGBA(0, 0, 0, 0.85)
	dc.DrawString(label, x+1, y+1)
	dc.SetHexColor("#ffffff")
	dc.DrawString(label, x, y)
}
