package replay

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	cellSize    = 3  // each board cell is 3x3 pixels
	labelGutter = 34 // left-hand strip for per-snake length labels
)

// RenderPNG draws one frame as a small bitmap: the board grid on the
// right, one length label per snake on the left in that snake's color.
// Snake heads are drawn a shade lighter than the body so direction is
// readable in a still image.
func RenderPNG(frame Frame) ([]byte, error) {
	if frame.Width <= 0 || frame.Height <= 0 {
		return nil, fmt.Errorf("frame has no board dimensions (width=%d height=%d)", frame.Width, frame.Height)
	}

	canvasWidth := labelGutter + frame.Width*cellSize + 1
	canvasHeight := frame.Height * cellSize
	if minHeight := 10 + 20*len(frame.Snakes); canvasHeight < minHeight {
		canvasHeight = minHeight
	}

	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	black := color.RGBA{0, 0, 0, 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{black}, image.Point{}, draw.Src)

	offsetX := canvasWidth - frame.Width*cellSize

	dividerColor := color.RGBA{100, 100, 100, 255}
	dividerRect := image.Rect(offsetX-1, 0, offsetX, canvasHeight)
	draw.Draw(img, dividerRect, &image.Uniform{dividerColor}, image.Point{}, draw.Src)

	yOffset := 10
	for _, sn := range frame.Snakes {
		bodyColor, err := hexToRGBA(sn.Color)
		if err != nil {
			bodyColor = generateColor(sn.Name)
		}
		headColor := lighten(bodyColor)

		for i, segment := range sn.Body {
			flippedY := frame.Height - 1 - segment.Y
			c := bodyColor
			if i == 0 {
				c = headColor
			}
			drawCell(img, offsetX+segment.X*cellSize, flippedY*cellSize, canvasHeight, c)
		}

		addLabel(img, 4, yOffset, fmt.Sprintf("%3d", len(sn.Body)), bodyColor)
		yOffset += 20
	}

	green := color.RGBA{0, 255, 0, 255}
	for _, food := range frame.Food {
		flippedY := frame.Height - 1 - food.Y
		drawCell(img, offsetX+food.X*cellSize, flippedY*cellSize, canvasHeight, green)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode frame PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// generateColor derives a stable color from a hash of the snake name,
// for snakes that didn't declare one.
func generateColor(name string) color.RGBA {
	h := sha1.New()
	h.Write([]byte(name))
	hash := h.Sum(nil)
	return color.RGBA{hash[0], hash[1], hash[2], 255}
}

// lighten brightens a color for snake heads.
func lighten(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(min(int(c.R)+30, 255)),
		G: uint8(min(int(c.G)+30, 255)),
		B: uint8(min(int(c.B)+30, 255)),
		A: c.A,
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func addLabel(img *image.RGBA, x, y int, label string, col color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(label)
}

// hexToRGBA parses "#RRGGBB" or "RRGGBB".
func hexToRGBA(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color format: %s", hex)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}
	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}
	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return color.RGBA{}, err
	}

	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}, nil
}

func drawCell(img *image.RGBA, x, y, canvasHeight int, c color.RGBA) {
	for i := 0; i < cellSize; i++ {
		for j := 0; j < cellSize; j++ {
			if y+j < canvasHeight {
				img.Set(x+i, y+j, c)
			}
		}
	}
}
