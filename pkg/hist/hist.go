// 24 Mar 2025

// Package hist draws the distribution of percent identities as a
// png. One look at the histogram tells you more about a batch than
// scrolling a csv file does. NaN entries are counted and reported in
// the title, but obviously do not land in any bin.
package hist

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// Opt has the plot knobs. Zero values get defaults.
type Opt struct {
	Width  int // pixels, default 640
	Height int // pixels, default 420
	NBins  int // bins over [0,100], default 20
	Title  string
}

const (
	dfltWidth  = 640
	dfltHeight = 420
	dfltNBins  = 20
	margin     = 45 // room for axes and labels
)

var (
	barColor  = color.RGBA{70, 120, 180, 255}
	axisColor = color.RGBA{30, 30, 30, 255}
)

// bin sorts the finite identities into nbins bins over [0,100] and
// says how many were NaN. 100 goes in the last bin, not past it.
func bin(idents []float64, nbins int) (bins []int, nNaN int) {
	bins = make([]int, nbins)
	for _, f := range idents {
		if math.IsNaN(f) {
			nNaN++
			continue
		}
		b := int(f / 100 * float64(nbins))
		if b < 0 {
			b = 0
		}
		if b >= nbins {
			b = nbins - 1
		}
		bins[b]++
	}
	return bins, nNaN
}

// hline and vline paint single pixel lines. Good enough for axes.
func hline(img *image.RGBA, x0, x1, y int, c color.Color) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y, c)
	}
}
func vline(img *image.RGBA, x, y0, y1 int, c color.Color) {
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
	}
}

// Plot writes the histogram of idents as a png. The drawing is
// deliberately primitive. Bars, two axes, a handful of labels.
func Plot(w io.Writer, idents []float64, opt *Opt) error {
	if opt == nil {
		opt = &Opt{}
	}
	width, height, nbins := opt.Width, opt.Height, opt.NBins
	if width <= 0 {
		width = dfltWidth
	}
	if height <= 0 {
		height = dfltHeight
	}
	if nbins <= 0 {
		nbins = dfltNBins
	}

	bins, nNaN := bin(idents, nbins)
	maxCnt := 1
	for _, b := range bins {
		if b > maxCnt {
			maxCnt = b
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	x0, y0 := margin, height-margin // origin of the plot area
	x1, y1 := width-margin/2, margin
	plotW, plotH := x1-x0, y0-y1

	for i, cnt := range bins {
		if cnt == 0 {
			continue
		}
		bx0 := x0 + i*plotW/nbins + 1
		bx1 := x0 + (i+1)*plotW/nbins - 1
		bh := cnt * plotH / maxCnt
		r := image.Rect(bx0, y0-bh, bx1, y0)
		draw.Draw(img, r, &image.Uniform{barColor}, image.Point{}, draw.Src)
	}

	hline(img, x0, x1, y0, axisColor)
	vline(img, x0, y1, y0, axisColor)

	fnt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("parsing built-in font: %w", err)
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(fnt)
	ctx.SetFontSize(12)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(axisColor))

	title := opt.Title
	if title == "" {
		title = "percent identity"
	}
	if nNaN > 0 {
		title = fmt.Sprintf("%s (%d of %d not computed)", title, nNaN, len(idents))
	}
	if _, err := ctx.DrawString(title, freetype.Pt(x0, y1-8)); err != nil {
		return err
	}
	for _, tick := range []int{0, 25, 50, 75, 100} {
		x := x0 + tick*plotW/100
		vline(img, x, y0, y0+4, axisColor)
		lbl := fmt.Sprintf("%d", tick)
		if _, err := ctx.DrawString(lbl, freetype.Pt(x-7, y0+20)); err != nil {
			return err
		}
	}
	if _, err := ctx.DrawString(fmt.Sprintf("%d", maxCnt), freetype.Pt(6, y1+6)); err != nil {
		return err
	}
	if _, err := ctx.DrawString("0", freetype.Pt(6, y0)); err != nil {
		return err
	}

	return png.Encode(w, img)
}
