// Package viz renders boards as PNGs and MCTS subtrees as Graphviz DOT,
// for debugging self-play games and search behaviour.
package viz

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/alphabeth-othello/othello"
)

// cellPixels is the rendered size of one board square.
const cellPixels = 48

// BoardRenderer draws Board values to PNG. With a TrueType font loaded
// it anti-aliases coordinate labels via freetype; otherwise it falls
// back to x/image/font's fixed-width basicfont.
type BoardRenderer struct {
	face font.Face
	ctx  *freetype.Context
}

// NewBoardRenderer builds a renderer. If fontBytes is non-empty it is
// parsed as a TrueType font for freetype rendering; a nil or empty
// fontBytes falls back to basicfont.Face7x13.
func NewBoardRenderer(fontBytes []byte) (*BoardRenderer, error) {
	if len(fontBytes) == 0 {
		return &BoardRenderer{face: basicfont.Face7x13}, nil
	}
	f, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, errors.Wrap(err, "viz: parsing font")
	}
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(14)
	return &BoardRenderer{ctx: ctx}, nil
}

// Render draws board as a PNG-encoded image: an 8x8 grid, black/white
// disks, and a thin border between squares.
func (r *BoardRenderer) Render(board othello.Board) ([]byte, error) {
	size := othello.Size * cellPixels
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{0, 110, 40, 255}}, image.Point{}, draw.Src)

	gridLine := color.RGBA{0, 0, 0, 255}
	for i := 0; i <= othello.Size; i++ {
		p := i * cellPixels
		drawLine(img, 0, p, size, p, gridLine)
		drawLine(img, p, 0, p, size, gridLine)
	}

	for y := 0; y < othello.Size; y++ {
		for x := 0; x < othello.Size; x++ {
			switch board.At(x, y) {
			case othello.Black:
				drawDisk(img, x, y, color.RGBA{10, 10, 10, 255})
			case othello.White:
				drawDisk(img, x, y, color.RGBA{245, 245, 245, 255})
			}
		}
	}

	if r.ctx != nil {
		r.ctx.SetClip(img.Bounds())
		r.ctx.SetDst(img)
		r.ctx.SetSrc(image.NewUniform(color.White))
		for x := 0; x < othello.Size; x++ {
			pt := freetype.Pt(x*cellPixels+4, 12)
			if _, err := r.ctx.DrawString(string(rune('a'+x)), pt); err != nil {
				return nil, errors.Wrap(err, "viz: drawing label")
			}
		}
	} else if r.face != nil {
		d := &font.Drawer{Dst: img, Src: image.NewUniform(color.White), Face: r.face}
		for x := 0; x < othello.Size; x++ {
			d.Dot = fixed.P(x*cellPixels+4, 12)
			d.DrawString(string(rune('a' + x)))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "viz: encoding png")
	}
	return buf.Bytes(), nil
}

func drawDisk(img *image.RGBA, x, y int, c color.RGBA) {
	cx := x*cellPixels + cellPixels/2
	cy := y*cellPixels + cellPixels/2
	radius := cellPixels/2 - 4
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(cx+dx, cy+dy, c)
			}
		}
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	if x0 == x1 {
		for y := y0; y <= y1; y++ {
			img.SetRGBA(x0, y, c)
		}
		return
	}
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, c)
	}
}
