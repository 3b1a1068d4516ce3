//go:build !linux

package gremlex

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerStatsUnavailableOffLinux(t *testing.T) {
	srv := newMockServer(t, func(t *testing.T, conn *websocket.Conn, req map[string]interface{}) {})
	defer srv.Close()

	w, err := NewWorker(cfgForServer(t, srv))
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Stats()
	assert.ErrorIs(t, err, ErrConnectionUnavailable)
}
