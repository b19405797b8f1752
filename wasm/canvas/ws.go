//go:build js && wasm
// +build js,wasm

package canvas

import (
	"errors"
	"syscall/js"
)

// Connect opens the frame socket and draws every received frame. Drawing
// happens in the browser's message callback.
func (c *Canvas) Connect(url string) error {
	ctor := c.window.Get("WebSocket")
	if ctor.IsUndefined() {
		return errors.New("websocket not supported")
	}
	socket := ctor.New(url)

	socket.Set("onopen", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		c.Log("connected to " + url)
		return nil
	}))
	socket.Set("onclose", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		c.Log("socket closed")
		return nil
	}))
	socket.Set("onmessage", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		f, err := decodeFrame([]byte(args[0].Get("data").String()))
		if err != nil {
			c.Log("bad frame: " + err.Error())
			return nil
		}
		c.draw(f)
		return nil
	}))
	return nil
}
