package handler

// Envelope is the body of every API response, success or error.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func envelope(message string, data any) Envelope {
	return Envelope{Message: message, Data: data}
}
