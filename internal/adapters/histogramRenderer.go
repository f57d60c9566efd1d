package adapters

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/morgansundqvist/musecase/internal/domain"
)

const (
	chartWidth   = 800
	chartHeight  = 480
	marginLeft   = 70.0
	marginRight  = 20.0
	marginTop    = 50.0
	marginBottom = 90.0
	barColor     = "#636EFA"
	maxLabelRune = 14
)

// HistogramRenderer draws a histogram as a PNG bar chart. Font faces cache
// glyphs without locking, so each render builds its own.
type HistogramRenderer struct {
	font *truetype.Font
}

func NewHistogramRenderer() (*HistogramRenderer, error) {
	parsed, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart font: %w", err)
	}
	return &HistogramRenderer{font: parsed}, nil
}

func (r *HistogramRenderer) face(size float64) font.Face {
	return truetype.NewFace(r.font, &truetype.Options{Size: size, Hinting: font.HintingNone})
}

func (r *HistogramRenderer) RenderPNG(w io.Writer, h *domain.Histogram) error {
	titleFace, labelFace := r.face(18), r.face(11)
	defer titleFace.Close()
	defer labelFace.Close()

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	plotLeft, plotRight := marginLeft, float64(chartWidth)-marginRight
	plotTop, plotBottom := marginTop, float64(chartHeight)-marginBottom
	plotW, plotH := plotRight-plotLeft, plotBottom-plotTop

	dc.SetRGB(0.15, 0.15, 0.15)
	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored(h.Title, float64(chartWidth)/2, marginTop/2, 0.5, 0.5)

	dc.SetFontFace(labelFace)
	dc.SetLineWidth(1)
	dc.DrawLine(plotLeft, plotTop, plotLeft, plotBottom)
	dc.DrawLine(plotLeft, plotBottom, plotRight, plotBottom)
	dc.Stroke()

	dc.DrawStringAnchored(h.Column, plotLeft+plotW/2, float64(chartHeight)-15, 0.5, 0.5)
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 18, plotTop+plotH/2)
	dc.DrawStringAnchored("count", 18, plotTop+plotH/2, 0.5, 0.5)
	dc.Pop()

	if len(h.Bins) == 0 {
		dc.DrawStringAnchored("no values", plotLeft+plotW/2, plotTop+plotH/2, 0.5, 0.5)
		return encode(dc, w)
	}

	maxCount := h.MaxCount()
	for _, tick := range yTicks(maxCount) {
		y := plotBottom - float64(tick)/float64(maxCount)*plotH
		dc.DrawLine(plotLeft-4, y, plotLeft, y)
		dc.Stroke()
		dc.DrawStringAnchored(strconv.Itoa(tick), plotLeft-8, y, 1, 0.5)
	}

	barW := plotW / float64(len(h.Bins))
	labelEvery := int(math.Ceil(float64(len(h.Bins)) / 12))
	for i, b := range h.Bins {
		x := plotLeft + float64(i)*barW
		if b.Count > 0 {
			barH := float64(b.Count) / float64(maxCount) * plotH
			dc.SetHexColor(barColor)
			dc.DrawRectangle(x+1, plotBottom-barH, barW-2, barH)
			dc.Fill()
		}
		if i%labelEvery != 0 {
			continue
		}
		dc.SetRGB(0.15, 0.15, 0.15)
		cx := x + barW/2
		dc.Push()
		dc.RotateAbout(gg.Radians(-35), cx, plotBottom+12)
		dc.DrawStringAnchored(truncateLabel(b.Label), cx, plotBottom+12, 1, 0.5)
		dc.Pop()
	}

	return encode(dc, w)
}

func encode(dc *gg.Context, w io.Writer) error {
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// yTicks returns up to five evenly spaced integer ticks from 0 to max.
func yTicks(max int) []int {
	step := int(math.Ceil(float64(max) / 4))
	if step < 1 {
		step = 1
	}
	var ticks []int
	for v := 0; v <= max; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= maxLabelRune {
		return s
	}
	return string(runes[:maxLabelRune-1]) + "…"
}
