package gremlex

import (
	"encoding/json"
	"fmt"
)

const (
	statusSuccess      = 200
	statusNoContent    = 204
	statusPartial      = 206
)

// status is the wire "status" object of a response envelope.
type status struct {
	Code         int                    `json:"code"`
	Message      string                 `json:"message"`
	ErrorMessage string                 `json:"error_message"`
	Attributes   map[string]interface{} `json:"attributes"`
}

// text prefers Message, falling back to ErrorMessage, per the server's
// inconsistent use of the two fields across error paths.
func (s status) text() string {
	if s.Message != "" {
		return s.Message
	}
	return s.ErrorMessage
}

// result is the wire "result" object of a response envelope.
type result struct {
	Data json.RawMessage        `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}

// response is the inbound wire envelope for a single text frame.
type response struct {
	RequestID string `json:"requestId"`
	Status    status `json:"status"`
	Result    result `json:"result"`
}

// parseResponse unmarshals a single text frame's payload.
func parseResponse(payload []byte) (response, error) {
	var r response
	if err := json.Unmarshal(payload, &r); err != nil {
		return response{}, fmt.Errorf("gremlex: malformed response frame: %w", err)
	}
	return r, nil
}

// serverErrorFor builds a *ServerError from a non-success status, classifying
// its Kind from the shared status-code table and falling back to
// KindUnknown for any code the table doesn't name.
func serverErrorFor(s status) *ServerError {
	kind, ok := statusKinds[s.Code]
	if !ok {
		kind = KindUnknown
	}
	return &ServerError{Code: s.Code, Kind: kind, Message: s.text()}
}

// assembler accumulates results across a sequence of response frames that
// share one requestId, applying the priority rule over status codes: 200 and
// 204 are terminal (204 discarding any accumulator so far), 206 appends to
// the accumulator and waits for a terminal frame, and any other code is a
// terminal error.
type assembler struct {
	requestID string
	acc       []interface{}
}

func newAssembler(requestID string) *assembler {
	return &assembler{requestID: requestID}
}

// assemblerOutcome reports what a single frame did to the assembler: whether
// the overall query is now complete, the accumulated result (if complete),
// and any terminal error.
type assemblerOutcome struct {
	done   bool
	result []interface{}
	err    error
}

// feed applies one response frame matching this assembler's requestId.
// Frames for other request ids must be filtered out by the caller before
// calling feed.
func (a *assembler) feed(r response) assemblerOutcome {
	switch r.Status.Code {
	case statusNoContent:
		return assemblerOutcome{done: true, result: nil}
	case statusSuccess:
		data, err := decodeResultData(r.Result.Data)
		if err != nil {
			return assemblerOutcome{done: true, err: err}
		}
		a.acc = append(a.acc, data...)
		return assemblerOutcome{done: true, result: a.acc}
	case statusPartial:
		data, err := decodeResultData(r.Result.Data)
		if err != nil {
			return assemblerOutcome{done: true, err: err}
		}
		a.acc = append(a.acc, data...)
		return assemblerOutcome{done: false}
	default:
		return assemblerOutcome{done: true, err: serverErrorFor(r.Status)}
	}
}

// decodeResultData decodes a result.data payload (always a GraphSON g:List
// at the top level for eval responses, but tolerated as any shape) into a
// flat slice of decoded values.
func decodeResultData(raw json.RawMessage) ([]interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	v, err := decodeGraphSON(raw)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	if list, ok := v.([]interface{}); ok {
		return list, nil
	}
	if set, ok := v.(Set); ok {
		return []interface{}(set), nil
	}
	return []interface{}{v}, nil
}
