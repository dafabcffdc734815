package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// widgetRecord is the configuration form of a widget:
//
//	{"type": "Button", "x": 10, "y": 10, "w": 120, "h": 40, "label": "Hi", "touch": "hello"}
//
// Fields that do not apply to the named type are ignored; fields that no
// type knows are rejected.
type widgetRecord struct {
	Type string `json:"type"`

	X  int `json:"x"`
	Y  int `json:"y"`
	W  int `json:"w"`
	H  int `json:"h"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`

	Color       *Color `json:"color"`
	RoundRadius int    `json:"roundRadius"`
	Fill        bool   `json:"fill"`

	Datum    *Datum `json:"datum"`
	FontSize *int   `json:"fontSize"`
	Text     string `json:"text"`

	Pixels [][]uint8 `json:"pixels"`

	Label           string `json:"label"`
	BorderColor     *Color `json:"borderColor"`
	LabelColor      *Color `json:"labelColor"`
	LabelDatum      *Datum `json:"labelDatum"`
	LabelSize       *int   `json:"labelSize"`
	LabelMarginLeft *int   `json:"labelMarginLeft"`
	Touch           string `json:"touch"`
}

// ParseWidgets decodes a JSON array of widget records. An unknown type name
// fails with ErrUnknownWidget; nothing is silently dropped.
func ParseWidgets(data []byte) ([]Widget, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("protocol: widget list: %w", err)
	}
	out := make([]Widget, 0, len(raw))
	for i, item := range raw {
		w, err := ParseWidget(item)
		if err != nil {
			return nil, fmt.Errorf("widget %d: %w", i, err)
		}
		out = append(out, w)
	}
	return out, nil
}

// ParseWidget decodes a single widget record.
func ParseWidget(data []byte) (Widget, error) {
	var rec widgetRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("protocol: widget record: %w", err)
	}

	color := deref(rec.Color, White)
	fontSize := deref(rec.FontSize, DefaultLabelSize)

	var w Widget
	switch rec.Type {
	case "Rect":
		w = Rect{X: rec.X, Y: rec.Y, W: rec.W, H: rec.H, Color: color, RoundRadius: rec.RoundRadius, Fill: rec.Fill}
	case "Label":
		w = Label{X: rec.X, Y: rec.Y, Datum: deref(rec.Datum, TopLeft), FontSize: fontSize, Color: color, Text: rec.Text}
	case "Line":
		w = Line{X1: rec.X1, Y1: rec.Y1, X2: rec.X2, Y2: rec.Y2, Color: color}
	case "Image":
		w = Image{X: rec.X, Y: rec.Y, W: rec.W, H: rec.H, Color: color, Pixels: rec.Pixels}
	case "BatteryStatus":
		w = BatteryStatus{X: rec.X, Y: rec.Y, FontSize: fontSize, Color: color}
	case "Temperature":
		w = Temperature{X: rec.X, Y: rec.Y, FontSize: fontSize, Color: color}
	case "Humidity":
		w = Humidity{X: rec.X, Y: rec.Y, FontSize: fontSize, Color: color}
	case "TouchArea":
		if rec.Touch == "" {
			return nil, fmt.Errorf("protocol: TouchArea needs a touch name")
		}
		return TouchArea{X: rec.X, Y: rec.Y, W: rec.W, H: rec.H, Token: NamedToken(rec.Touch)}, nil
	case "Button":
		b := Button{
			X: rec.X, Y: rec.Y, W: rec.W, H: rec.H,
			Label:           rec.Label,
			BorderColor:     rec.BorderColor,
			LabelColor:      rec.LabelColor,
			LabelDatum:      rec.LabelDatum,
			LabelSize:       rec.LabelSize,
			LabelMarginLeft: rec.LabelMarginLeft,
		}
		if rec.Touch != "" {
			b.Token = NamedToken(rec.Touch)
		}
		for _, p := range b.Expand() {
			if err := Validate(p); err != nil {
				return nil, err
			}
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidget, rec.Type)
	}

	if err := Validate(w); err != nil {
		return nil, err
	}
	return w, nil
}
