package protocol

import (
	"encoding/binary"
	"fmt"
)

// Decode parses a payload produced by Encode. Touch areas are not on the
// wire, so the returned widgets hold drawable primitives only. A zero
// updateTimer decodes as an unset timer.
func Decode(b []byte) (Envelope, error) {
	var env Envelope
	r := reader{buf: b}

	timer := r.u32()
	mode := r.u8()
	count := r.u16()
	if r.err != nil {
		return env, r.err
	}
	if timer != 0 {
		env.UpdateTimer = After(timer)
	}
	env.UpdateMode = UpdateMode(mode)

	if count > 0 {
		env.Widgets = make([]Widget, 0, count)
	}
	for i := 0; i < count; i++ {
		w, err := r.widget()
		if err != nil {
			return Envelope{}, fmt.Errorf("widget %d: %w", i, err)
		}
		env.Widgets = append(env.Widgets, w)
	}
	if r.off != len(b) {
		return Envelope{}, ErrTrailingData
	}
	return env, nil
}

type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if len(r.buf)-r.off < n {
		r.err = ErrShortPayload
		return false
	}
	return true
}

func (r *reader) u8() int {
	if !r.need(1) {
		return 0
	}
	v := r.buf[r.off]
	r.off++
	return int(v)
}

func (r *reader) u16() int {
	if !r.need(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return int(v)
}

func (r *reader) u32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *reader) bytes(n int) []byte {
	if !r.need(n) {
		return nil
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+n])
	r.off += n
	return out
}

func (r *reader) widget() (Widget, error) {
	tag := WidgetType(r.u8())
	if r.err != nil {
		return nil, r.err
	}

	var w Widget
	switch tag {
	case TypeRect:
		w = Rect{X: r.u16(), Y: r.u16(), W: r.u16(), H: r.u16(), Color: Color(r.u8()), RoundRadius: r.u8(), Fill: r.u8() != 0}
	case TypeLabel:
		l := Label{X: r.u16(), Y: r.u16(), Datum: Datum(r.u8()), FontSize: r.u8(), Color: Color(r.u8())}
		n := r.u8()
		if r.err == nil && n == 0 {
			return nil, fmt.Errorf("%w: zero text length", ErrMalformed)
		}
		text := r.bytes(n)
		if r.err != nil {
			return nil, r.err
		}
		if text[n-1] != 0 {
			return nil, fmt.Errorf("%w: label text not terminated", ErrMalformed)
		}
		l.Text = string(text[:n-1])
		w = l
	case TypeLine:
		w = Line{X1: r.u16(), Y1: r.u16(), X2: r.u16(), Y2: r.u16(), Color: Color(r.u8())}
	case TypeImage:
		im := Image{X: r.u16(), Y: r.u16(), W: r.u16(), H: r.u16(), Color: Color(r.u8())}
		if r.err != nil {
			return nil, r.err
		}
		if !r.need(im.W * im.H) {
			return nil, r.err
		}
		// An empty image decodes with nil pixels, as it was built.
		if im.H > 0 {
			im.Pixels = make([][]uint8, im.H)
			for y := range im.Pixels {
				im.Pixels[y] = r.bytes(im.W)
			}
		}
		w = im
	case TypeBatteryStatus:
		w = BatteryStatus{X: r.u16(), Y: r.u16(), FontSize: r.u8(), Color: Color(r.u8())}
	case TypeTemperature:
		w = Temperature{X: r.u16(), Y: r.u16(), FontSize: r.u8(), Color: Color(r.u8())}
	case TypeHumidity:
		w = Humidity{X: r.u16(), Y: r.u16(), FontSize: r.u8(), Color: Color(r.u8())}
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrUnknownWidget, uint8(tag))
	}
	if r.err != nil {
		return nil, r.err
	}
	return w, nil
}
