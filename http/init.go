package http

// Params holds the address the frame server listens on and the static
// directory it serves next to the websocket endpoint.
type Params struct {
	Address string
	Prefix  string
	Root    string
}

// SocketPath is the websocket endpoint frames are streamed on.
const SocketPath = "/ws"

var params = Params{
	Address: "localhost:5000",
	Prefix:  "/",
	Root:    ".",
}

// InitServer replaces the shared server parameters. Empty fields keep
// their current value.
func InitServer(p Params) {
	if p.Address != "" {
		params.Address = p.Address
	}
	if p.Prefix != "" {
		params.Prefix = p.Prefix
	}
	if p.Root != "" {
		params.Root = p.Root
	}
}

// GetParams returns the shared server parameters.
func GetParams() Params {
	return params
}

// SocketURL returns the websocket URL clients connect to.
func (p Params) SocketURL() string {
	return "ws://" + p.Address + SocketPath
}
