package replay

import (
	"bytes"
	"encoding/json"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/slitherbrain/internal/geo"
)

const frameEventFixture = `{
  "Type": "frame",
  "Data": {
    "ID": "game-1",
    "Turn": 12,
    "Snakes": [
      {
        "ID": "snake-1",
        "Name": "Gregory",
        "Body": [{"X": 1, "Y": 1}, {"X": 1, "Y": 2}, {"X": 1, "Y": 3}],
        "Health": 90,
        "Color": "#FF5733",
        "Latency": "45",
        "Death": null
      },
      {
        "ID": "snake-2",
        "Name": "Rival",
        "Body": [{"X": 9, "Y": 9}],
        "Health": 0,
        "Color": "",
        "Death": {"Cause": "head-collision", "Turn": 11, "EliminatedBy": "snake-1"}
      }
    ],
    "Food": [{"X": 5, "Y": 5}],
    "Width": 0,
    "Height": 0
  }
}`

func TestFrameEventUnmarshal(t *testing.T) {
	var event FrameEvent
	assert.NoError(t, json.Unmarshal([]byte(frameEventFixture), &event))

	assert.Equal(t, "frame", event.Type)
	assert.Equal(t, 12, event.Data.Turn)
	assert.Len(t, event.Data.Snakes, 2)
	assert.Equal(t, geo.Point{X: 1, Y: 3}, event.Data.Snakes[0].Body[2])
	assert.Nil(t, event.Data.Snakes[0].Death)
	assert.NotNil(t, event.Data.Snakes[1].Death)
	assert.Equal(t, "head-collision", event.Data.Snakes[1].Death.Cause)
	assert.Equal(t, []geo.Point{{X: 5, Y: 5}}, event.Data.Food)
}

func TestRenderPNG(t *testing.T) {
	frame := Frame{
		Turn:   12,
		Width:  11,
		Height: 11,
		Snakes: []FrameSnake{
			{
				Name:   "Gregory",
				Color:  "#FF5733",
				Body:   []geo.Point{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 3}},
				Health: 90,
			},
			{
				Name: "Rival",
				// No declared color; a stable one is derived from the name.
				Body:   []geo.Point{{X: 9, Y: 9}},
				Health: 50,
			},
		},
		Food: []geo.Point{{X: 5, Y: 5}},
	}

	data, err := RenderPNG(frame)
	assert.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, labelGutter+frame.Width*cellSize+1, bounds.Dx())
	assert.GreaterOrEqual(t, bounds.Dy(), frame.Height*cellSize)
}

func TestRenderPNGRejectsDimensionlessFrame(t *testing.T) {
	_, err := RenderPNG(Frame{Turn: 1})
	assert.Error(t, err)
}

func TestHexToRGBA(t *testing.T) {
	c, err := hexToRGBA("#FF5733")
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xFF), c.R)
	assert.Equal(t, uint8(0x57), c.G)
	assert.Equal(t, uint8(0x33), c.B)

	c, err = hexToRGBA("00ff00")
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x00), c.R)
	assert.Equal(t, uint8(0xFF), c.G)

	_, err = hexToRGBA("nope")
	assert.Error(t, err)

	_, err = hexToRGBA("")
	assert.Error(t, err)
}

func TestGenerateColorIsStable(t *testing.T) {
	assert.Equal(t, generateColor("Gregory"), generateColor("Gregory"))
	assert.NotEqual(t, generateColor("Gregory"), generateColor("Rival"))
}
