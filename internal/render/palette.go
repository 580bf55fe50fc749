package render

import (
	"image/color"

	"gonum.org/v1/plot/palette"
)

// paletteSize is the number of pseudo-color entries; normalized pixel values
// index straight into the table.
const paletteSize = 256

// heatPalette builds the cold-to-hot lookup table, sweeping the hue from blue
// (coldest) to red (hottest) at full saturation.
func heatPalette() [paletteSize]color.RGBA {
	var table [paletteSize]color.RGBA
	for i, c := range palette.Rainbow(paletteSize, palette.Blue, palette.Red, 1, 1, 1).Colors() {
		table[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}
	return table
}
