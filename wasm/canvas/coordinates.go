package canvas

import "encoding/json"

// frame mirrors the JSON frames streamed by the websocket server.
type frame struct {
	Frame     uint64  `json:"frame"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Size      float64 `json:"size"`
	Particles []point `json:"particles"`
}

type point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
}

func decodeFrame(data []byte) (*frame, error) {
	f := new(frame)
	if err := json.Unmarshal(data, f); err != nil {
		return nil, err
	}
	return f, nil
}

// rect is a marker in canvas pixels.
type rect struct {
	X, Y, W, H float64
}

// toCanvas maps the square marker of p from world coordinates (centered,
// y up) to a cw*ch canvas (top-left origin, y down).
func (f *frame) toCanvas(p point, cw, ch float64) rect {
	if f.Width <= 0 || f.Height <= 0 {
		return rect{}
	}
	sx, sy := cw/f.Width, ch/f.Height
	cx := (p.X + f.Width/2) * sx
	cy := (f.Height/2 - p.Y) * sy
	w, h := f.Size*sx, f.Size*sy
	return rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}
