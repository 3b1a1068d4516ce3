//go:build linux

package gremlex

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerStatsReturnsTCPInfo(t *testing.T) {
	srv := newMockServer(t, func(t *testing.T, conn *websocket.Conn, req map[string]interface{}) {})
	defer srv.Close()

	w, err := NewWorker(cfgForServer(t, srv))
	require.NoError(t, err)
	defer w.Close()

	info, err := w.Stats()
	require.NoError(t, err)
	assert.NotNil(t, info)
}

func TestWorkerStatsErrorsOnClosedConnection(t *testing.T) {
	srv := newMockServer(t, func(t *testing.T, conn *websocket.Conn, req map[string]interface{}) {})
	defer srv.Close()

	w, err := NewWorker(cfgForServer(t, srv))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = w.Stats()
	assert.Error(t, err)
}
