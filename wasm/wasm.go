//go:build js && wasm
// +build js,wasm

package main

import (
	"github.com/esimov/ascii-particles/http"
	"github.com/esimov/ascii-particles/wasm/canvas"
)

func main() {
	c := canvas.NewCanvas("particles")
	if err := c.Connect(http.GetParams().SocketURL()); err != nil {
		c.Alert("Frame server not reachable: " + err.Error())
		return
	}
	// keep the callbacks alive
	select {}
}
