// Package draw renders to ANSI terminals: a half-block pixel canvas scaled
// from arena coordinates, plus buffered output suitable for SSH sessions.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters used by the canvas.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
