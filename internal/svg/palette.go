// Package svg renders the progression and breakdown series as standalone
// SVG documents. Every call builds a complete fresh document from its input
// series, so re-rendering after a new fetch replaces the previous chart
// instead of accumulating elements.
package svg

// palette is the fixed repeating color cycle for breakdown arcs. Slice i
// gets palette[i % len(palette)], keyed by admission order, so a subject
// keeps its color across re-renders of the same snapshot.
var palette = []string{
	"#FF0000", "#FFFF00", "#FF1493", "#0000FF", "#00FF00", "#FFA500",
	"#FF69B4", "#00CED1", "#FF6347", "#FF4500", "#1E90FF", "#DC143C",
	"#FF8C00", "#008080", "#FA8072",
}

// SliceColor returns the palette color for the slice at index i.
func SliceColor(i int) string {
	return palette[i%len(palette)]
}
