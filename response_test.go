package gremlex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, js string) response {
	t.Helper()
	r, err := parseResponse([]byte(js))
	require.NoError(t, err)
	return r
}

func TestAssemblerEmptyResult(t *testing.T) {
	a := newAssembler("R")
	r := mustParse(t, `{"requestId":"R","status":{"code":204,"message":""},"result":{"data":null,"meta":{}}}`)
	out := a.feed(r)
	assert.True(t, out.done)
	assert.NoError(t, out.err)
	assert.Empty(t, out.result)
}

func TestAssemblerSingleSuccess(t *testing.T) {
	a := newAssembler("R")
	r := mustParse(t, `{"requestId":"R","status":{"code":200,"message":""},"result":{"data":{"@type":"g:List","@value":["0"]},"meta":{}}}`)
	out := a.feed(r)
	assert.True(t, out.done)
	assert.Equal(t, []interface{}{"0"}, out.result)
}

func TestAssemblerPartialThenSuccess(t *testing.T) {
	a := newAssembler("R")

	first := mustParse(t, `{"requestId":"R","status":{"code":206,"message":""},"result":{"data":{"@type":"g:List","@value":[{"@type":"g:Map","@value":["id","id1","linked",{"@type":"g:List","@value":["id2"]},"label","VERTEX"]}]},"meta":{}}}`)
	out1 := a.feed(first)
	assert.False(t, out1.done)

	second := mustParse(t, `{"requestId":"R","status":{"code":200,"message":""},"result":{"data":{"@type":"g:List","@value":[{"@type":"g:Map","@value":["id","id2","linked",{"@type":"g:List","@value":["id1"]},"label","VERTEX"]}]},"meta":{}}}`)
	out2 := a.feed(second)
	require.True(t, out2.done)
	require.Len(t, out2.result, 2)

	m1 := out2.result[0].(GMap)
	assert.Equal(t, "id1", m1["id"])
	m2 := out2.result[1].(GMap)
	assert.Equal(t, "id2", m2["id"])
}

func TestAssemblerIgnoresPongBetweenFrames(t *testing.T) {
	// Pong/ping frames never reach the assembler (gorilla/websocket consumes
	// them inside the transport's read, so the worker never dispatches them
	// to feed), so interleaving them changes nothing about the accumulated
	// result; this feeds the text frames alone.
	a := newAssembler("R")
	first := mustParse(t, `{"requestId":"R","status":{"code":206,"message":""},"result":{"data":{"@type":"g:List","@value":["a"]},"meta":{}}}`)
	a.feed(first)
	second := mustParse(t, `{"requestId":"R","status":{"code":200,"message":""},"result":{"data":{"@type":"g:List","@value":["b"]},"meta":{}}}`)
	out := a.feed(second)
	assert.Equal(t, []interface{}{"a", "b"}, out.result)
}

func TestAssemblerErrorStatus(t *testing.T) {
	a := newAssembler("R")
	r := mustParse(t, `{"requestId":"R","status":{"code":597,"message":"boom"},"result":{"data":null,"meta":{}}}`)
	out := a.feed(r)
	assert.True(t, out.done)
	var serr *ServerError
	require.ErrorAs(t, out.err, &serr)
	assert.Equal(t, KindScriptEvaluationError, serr.Kind)
	assert.Equal(t, "boom", serr.Message)
}

func TestStatusTextFallsBackToErrorMessage(t *testing.T) {
	s := status{Message: "", ErrorMessage: "legacy error"}
	assert.Equal(t, "legacy error", s.text())
}

func TestServerErrorUnknownCode(t *testing.T) {
	e := serverErrorFor(status{Code: 418, Message: "teapot"})
	assert.Equal(t, KindUnknown, e.Kind)
}
