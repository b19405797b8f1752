//go:build js && wasm
// +build js,wasm

package canvas

import (
	"syscall/js"
)

// Canvas draws streamed frames onto an HTML canvas element.
type Canvas struct {
	window js.Value
	doc    js.Value
	elem   js.Value
	ctx    js.Value
	width  float64
	height float64
}

// NewCanvas looks up the canvas element with the given id, creating it
// when the page has none.
func NewCanvas(id string) *Canvas {
	var c Canvas
	c.window = js.Global()
	c.doc = c.window.Get("document")
	c.elem = c.doc.Call("getElementById", id)
	if c.elem.IsNull() {
		c.elem = c.doc.Call("createElement", "canvas")
		c.elem.Set("id", id)
		c.doc.Get("body").Call("appendChild", c.elem)
	}
	c.width = c.elem.Get("width").Float()
	c.height = c.elem.Get("height").Float()
	c.ctx = c.elem.Call("getContext", "2d")

	return &c
}

// Alert calls the `alert` Javascript function.
func (c *Canvas) Alert(msg string) {
	c.window.Call("alert", msg)
}

// Log calls the `console.log` Javascript function.
func (c *Canvas) Log(args ...interface{}) {
	c.window.Get("console").Call("log", args...)
}

// draw clears the canvas to black and paints every particle marker.
func (c *Canvas) draw(f *frame) {
	c.ctx.Set("fillStyle", "#000000")
	c.ctx.Call("fillRect", 0, 0, c.width, c.height)

	for _, p := range f.Particles {
		r := f.toCanvas(p, c.width, c.height)
		c.ctx.Set("fillStyle", p.Color)
		c.ctx.Call("fillRect", r.X, r.Y, r.W, r.H)
	}
}
