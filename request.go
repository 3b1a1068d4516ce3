package gremlex

import (
	"encoding/json"

	"github.com/google/uuid"
)

// requestArgs is the "args" payload of an eval request.
type requestArgs struct {
	Gremlin  string `json:"gremlin"`
	Language string `json:"language"`
}

// request is the outbound wire envelope submitted to the server.
type request struct {
	RequestID string      `json:"requestId"`
	Op        string      `json:"op"`
	Processor string      `json:"processor"`
	Args      requestArgs `json:"args"`
}

// newRequest builds a request envelope for the given Gremlin-Groovy source,
// assigning a fresh random request id.
func newRequest(gremlin string) request {
	return request{
		RequestID: uuid.NewString(),
		Op:        "eval",
		Processor: "",
		Args: requestArgs{
			Gremlin:  gremlin,
			Language: "gremlin-groovy",
		},
	}
}

// frame marshals req to the JSON text frame the server expects.
func frame(req request) ([]byte, error) {
	return json.Marshal(req)
}

// prepareRequest encodes t and wraps the result in a fresh request frame.
func prepareRequest(t Traversal) (request, []byte, error) {
	src, err := Encode(t)
	if err != nil {
		return request{}, nil, err
	}
	req := newRequest(src)
	payload, err := frame(req)
	if err != nil {
		return request{}, nil, err
	}
	return req, payload, nil
}
