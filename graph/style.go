package graph

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/phil-mansfield/lhalotree/io"
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color in '#rrggbb' form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseRGB parses a color in either '#rrggbb' or 'rrggbb' form.
func ParseRGB(str string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(str), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("'%s' is not a color of the form #rrggbb.", str)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("'%s' is not a color of the form #rrggbb.", str)
	}
	return RGB{uint8(n >> 16), uint8(n >> 8), uint8(n)}, nil
}

// ColorMap maps log10(M / Msun) to a color.
type ColorMap interface {
	Color(logMass float64) RGB
}

// LinearColorMap interpolates linearly between Low and High as log mass goes
// from Min to Max. Masses outside that range are clamped to it.
type LinearColorMap struct {
	Min, Max  float64
	Low, High RGB
}

func (m *LinearColorMap) Color(logMass float64) RGB {
	t := normalize(logMass, m.Min, m.Max)
	return RGB{
		lerp8(m.Low.R, m.High.R, t),
		lerp8(m.Low.G, m.High.G, t),
		lerp8(m.Low.B, m.High.B, t),
	}
}

func lerp8(lo, hi uint8, t float64) uint8 {
	return uint8(math.Round(float64(lo) + t*(float64(hi)-float64(lo))))
}

// normalize maps x from [lo, hi] onto [0, 1], clamping. NaN maps to 0.
func normalize(x, lo, hi float64) float64 {
	t := (x - lo) / (hi - lo)
	if math.IsNaN(t) || t < 0 {
		return 0
	} else if t > 1 {
		return 1
	}
	return t
}

// Style decides the display attributes of graph nodes.
type Style struct {
	Colors                 ColorMap
	MinLogMass, MaxLogMass float64
	MinSize, MaxSize       float64
}

// DefaultStyle returns the Style described by io.DefaultConfig.
func DefaultStyle() *Style {
	style, err := NewStyle(&io.DefaultConfig().Display)
	if err != nil {
		panic("Internal lhalotree setup error: " + err.Error())
	}
	return style
}

// NewStyle creates a Style from a display config.
func NewStyle(disp *io.DisplayConfig) (*Style, error) {
	if err := disp.CheckInit(); err != nil {
		return nil, err
	}
	low, err := ParseRGB(disp.LowColor)
	if err != nil {
		return nil, err
	}
	high, err := ParseRGB(disp.HighColor)
	if err != nil {
		return nil, err
	}

	return &Style{
		Colors: &LinearColorMap{
			Min: disp.MinLogMass, Max: disp.MaxLogMass, Low: low, High: high,
		},
		MinLogMass: disp.MinLogMass, MaxLogMass: disp.MaxLogMass,
		MinSize: disp.MinSize, MaxSize: disp.MaxSize,
	}, nil
}

// Color returns the color of a node with the given log mass.
func (s *Style) Color(logMass float64) RGB {
	if s.Colors == nil {
		return RGB{}
	}
	return s.Colors.Color(logMass)
}

// Size returns the size of a node with the given log mass.
func (s *Style) Size(logMass float64) float64 {
	t := normalize(logMass, s.MinLogMass, s.MaxLogMass)
	return s.MinSize + t*(s.MaxSize-s.MinSize)
}
