package tasks

const iconSize = 32

var (
	checkedIcon   = drawCheckbox(true)
	uncheckedIcon = drawCheckbox(false)
)

func checkbox(done bool) [][]uint8 {
	if done {
		return checkedIcon
	}
	return uncheckedIcon
}

// drawCheckbox renders a 32x32 box with a two pixel frame, and a tick when
// checked. Ink is 15, background 0.
func drawCheckbox(checked bool) [][]uint8 {
	px := make([][]uint8, iconSize)
	for y := range px {
		px[y] = make([]uint8, iconSize)
		for x := range px[y] {
			if x < 2 || y < 2 || x >= iconSize-2 || y >= iconSize-2 {
				px[y][x] = 15
			}
		}
	}
	if !checked {
		return px
	}
	// Short stroke down to the base of the tick, then the long stroke up.
	for i := 0; i < 7; i++ {
		stamp(px, 8+i, 15+i)
	}
	for i := 0; i < 14; i++ {
		stamp(px, 15+i, 21-i)
	}
	return px
}

// stamp inks a 3x3 dot centered at (x, y).
func stamp(px [][]uint8, x, y int) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			yy, xx := y+dy, x+dx
			if yy >= 0 && yy < iconSize && xx >= 0 && xx < iconSize {
				px[yy][xx] = 15
			}
		}
	}
}
