package protocol

// Dispatch returns the token of the first touch area in widgets that
// contains (x, y). Earlier areas win when areas overlap. A tap that hits no
// area returns false; that is the normal outcome for taps on empty space.
func Dispatch(x, y int, widgets []Widget) (Token, bool) {
	for _, w := range widgets {
		area, ok := w.(TouchArea)
		if !ok {
			continue
		}
		if area.Contains(x, y) {
			return area.Token, true
		}
	}
	return nil, false
}

// TouchAreas returns the touch areas of widgets in list order.
func TouchAreas(widgets []Widget) []TouchArea {
	var out []TouchArea
	for _, w := range widgets {
		if area, ok := w.(TouchArea); ok {
			out = append(out, area)
		}
	}
	return out
}
