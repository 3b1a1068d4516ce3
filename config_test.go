package gremlex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig("localhost")
	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, 8182, c.Port)
	assert.Equal(t, "/gremlin", c.Path)
	assert.Equal(t, 1, c.PoolSize)
	assert.Equal(t, 0, c.MaxOverflow)
	assert.Equal(t, 60*time.Second, c.PingDelay)
	assert.Equal(t, 5*time.Second, c.DialTimeout)
	assert.Equal(t, 30*time.Second, c.Timeout)
	assert.Equal(t, 15*time.Second, c.ReadingWait)
	assert.False(t, c.Secure)
}

func TestConfigURL(t *testing.T) {
	c := NewConfig("graph.example.com")
	assert.Equal(t, "ws://graph.example.com:8182/gremlin", c.URL())

	c.SetSecure(true)
	assert.Equal(t, "wss://graph.example.com:8182/gremlin", c.URL())
}

func TestSetPortStringValidates(t *testing.T) {
	c := NewConfig("localhost")

	assert.NoError(t, c.SetPortString("8182"))
	assert.Equal(t, 8182, c.Port)

	err := c.SetPortString("not-a-port")
	assert.ErrorIs(t, err, ErrInvalidPort)

	err = c.SetPortString("99999")
	assert.ErrorIs(t, err, ErrInvalidPort)
}

func TestSetDebugAndVerbose(t *testing.T) {
	c := NewConfig("localhost")
	assert.False(t, c.Debug)
	c.SetDebug()
	assert.True(t, c.Debug)

	assert.False(t, c.Verbose)
	c.SetVerbose()
	assert.True(t, c.Verbose)
}
