package protocol

// Defaults applied to a Button's unset optional fields.
const (
	DefaultBorderColor = White
	DefaultLabelColor  = White
	DefaultLabelDatum  = MiddleCenter
	DefaultLabelSize   = 3
)

// Expand rewrites composite widgets into primitives, keeping list order.
// Primitives pass through untouched, so expanding an expanded list is a
// no-op.
func Expand(widgets []Widget) []Widget {
	out := make([]Widget, 0, len(widgets)+len(widgets)/2)
	for _, w := range widgets {
		if b, ok := w.(Button); ok {
			out = append(out, b.Expand()...)
			continue
		}
		out = append(out, w)
	}
	return out
}

// Expand returns the button's border, its label when Label is non-empty and
// its touch area when Token is set, in that order.
func (b Button) Expand() []Widget {
	out := make([]Widget, 0, 3)
	out = append(out, Rect{
		X:     b.X,
		Y:     b.Y,
		W:     b.W,
		H:     b.H,
		Color: deref(b.BorderColor, DefaultBorderColor),
	})

	if b.Label != "" {
		out = append(out, Label{
			X:        b.X + deref(b.LabelMarginLeft, b.W/2),
			Y:        b.Y + b.H/2,
			Datum:    deref(b.LabelDatum, DefaultLabelDatum),
			FontSize: deref(b.LabelSize, DefaultLabelSize),
			Color:    deref(b.LabelColor, DefaultLabelColor),
			Text:     b.Label,
		})
	}

	if b.Token != nil {
		out = append(out, TouchArea{X: b.X, Y: b.Y, W: b.W, H: b.H, Token: b.Token})
	}
	return out
}

func deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
