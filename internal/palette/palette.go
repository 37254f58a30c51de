// Package palette assigns stable display colors to category values.
package palette

// Palette is an ordered list of hex colors.
type Palette []string

// Safe is the colorblind-safe qualitative palette used for site statuses.
var Safe = Palette{
	"#88CCEE", "#CC6677", "#DDCC77", "#117733", "#332288", "#AA4499",
	"#44AA99", "#999933", "#882255", "#661100", "#888888",
}

// Set2 is the qualitative palette used for route sources.
var Set2 = Palette{
	"#66C2A5", "#FC8D62", "#8DA0CB", "#E78AC3", "#A6D854", "#FFD92F",
	"#E5C494", "#B3B3B3",
}

// At returns the i-th color, cycling through the palette.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return ""
	}
	return p[i%len(p)]
}

// Assign maps every distinct key to a color by first-seen order.
// Repeated keys keep the color of their first occurrence.
func Assign(p Palette, keys []string) map[string]string {
	colors := make(map[string]string, len(keys))
	next := 0
	for _, k := range keys {
		if _, ok := colors[k]; ok {
			continue
		}
		colors[k] = p.At(next)
		next++
	}
	return colors
}
