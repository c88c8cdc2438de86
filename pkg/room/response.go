package room

// Response is a payload sent to a connected client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// PayloadIn is a message from a connected client
type PayloadIn struct {
	Action         string                 `json:"action"`
	AdditionalData map[string]interface{} `json:"additionalData"`
	Context        string                 `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	context := ""
	if len(ctx) > 0 {
		context = ctx[0]
	}

	return &Response{
		Key:     "status",
		Value:   "OK",
		Context: context,
	}
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
