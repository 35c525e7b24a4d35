package shop

// RenderError reports a failed outbound Telegram call.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return "shop: " + e.Op + ": " + e.Err.Error()
}

func (e *RenderError) Unwrap() error { return e.Err }

// Code implements the router's error code lookup.
func (e *RenderError) Code() string { return "RENDER_ERROR" }
