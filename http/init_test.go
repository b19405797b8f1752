package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitServer(t *testing.T) {
	defer func(saved Params) { params = saved }(params)

	InitServer(Params{Address: "0.0.0.0:9000"})

	p := GetParams()
	assert.Equal(t, "0.0.0.0:9000", p.Address)
	assert.Equal(t, "/", p.Prefix)
	assert.Equal(t, ".", p.Root)
	assert.Equal(t, "ws://0.0.0.0:9000/ws", p.SocketURL())
}
