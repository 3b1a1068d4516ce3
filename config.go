package gremlex

import (
	"strconv"
	"time"

	"github.com/intwinelabs/logger"
)

// Config describes how to reach a Gremlin server and how a Worker or Pool
// built from it should behave. It is read once at startup and handed to the
// workers it configures; nothing here is read from a package-level global.
type Config struct {
	Host string
	Port int
	Path string

	Secure bool

	PoolSize    int
	MaxOverflow int

	PingDelay   time.Duration
	DialTimeout time.Duration
	Timeout     time.Duration

	// ReadingWait bounds a single ReadMessage call on the underlying
	// connection. Unlike Timeout (the caller-facing Query deadline), this is
	// the transport-level read deadline the read pump sets before every
	// read, so a stalled or half-open connection surfaces as a read error
	// and drives a reconnect instead of hanging forever.
	ReadingWait time.Duration

	ReconnectDelay time.Duration

	Debug   bool
	Verbose bool
	Logger  *logger.Logger

	Opts *TransportOpts
}

// TransportOpts carries transport-level options passed to the HTTP/WebSocket
// stack: TLS server name and certificate verification behavior.
type TransportOpts struct {
	TLSServerName      string
	InsecureSkipVerify bool
}

// NewConfig returns a Config with the documented defaults: port 8182, path
// "/gremlin", a 30 second caller timeout, a 60 second ping interval, and a
// single persistent worker.
func NewConfig(host string) *Config {
	return &Config{
		Host:           host,
		Port:           8182,
		Path:           "/gremlin",
		PoolSize:       1,
		MaxOverflow:    0,
		PingDelay:      60 * time.Second,
		DialTimeout:    5 * time.Second,
		Timeout:        30 * time.Second,
		ReadingWait:    15 * time.Second,
		ReconnectDelay: 2 * time.Second,
	}
}

// SetPort sets the server port.
func (c *Config) SetPort(port int) {
	c.Port = port
}

// SetPortString parses port and sets it, returning ErrInvalidPort if port is
// not a valid TCP port number.
func (c *Config) SetPortString(port string) error {
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 || p > 65535 {
		return ErrInvalidPort
	}
	c.Port = p
	return nil
}

// SetPath sets the WebSocket path (default "/gremlin").
func (c *Config) SetPath(path string) {
	c.Path = path
}

// SetSecure toggles wss:// (TLS) versus ws://.
func (c *Config) SetSecure(secure bool) {
	c.Secure = secure
}

// SetPoolSize sets the number of persistent Connection Workers.
func (c *Config) SetPoolSize(n int) {
	c.PoolSize = n
}

// SetMaxOverflow sets the number of additional transient workers the pool
// may create under load.
func (c *Config) SetMaxOverflow(n int) {
	c.MaxOverflow = n
}

// SetPingDelay sets the interval between keep-alive ping frames. Zero
// disables ping scheduling.
func (c *Config) SetPingDelay(d time.Duration) {
	c.PingDelay = d
}

// SetDialTimeout sets the HTTP-upgrade dial timeout.
func (c *Config) SetDialTimeout(d time.Duration) {
	c.DialTimeout = d
}

// SetTimeout sets the default caller timeout used when a query does not
// specify its own.
func (c *Config) SetTimeout(d time.Duration) {
	c.Timeout = d
}

// SetReadingWait sets the per-read deadline the read pump applies before
// every call to the underlying connection's ReadMessage.
func (c *Config) SetReadingWait(d time.Duration) {
	c.ReadingWait = d
}

// SetReconnectDelay sets the delay between reconnect attempts.
func (c *Config) SetReconnectDelay(d time.Duration) {
	c.ReconnectDelay = d
}

// SetDebug enables debug logging.
func (c *Config) SetDebug() {
	c.Debug = true
}

// SetVerbose enables verbose logging.
func (c *Config) SetVerbose() {
	c.Verbose = true
}

// SetLogger sets the logger used by Debug/Verbose logging.
func (c *Config) SetLogger(l *logger.Logger) {
	c.Logger = l
}

// SetOpts sets transport-level TLS options passed to the dialer. There is no
// proxy option.
func (c *Config) SetOpts(opts *TransportOpts) {
	c.Opts = opts
}

// URL returns the ws:// or wss:// URL this config dials.
func (c *Config) URL() string {
	scheme := "ws"
	if c.Secure {
		scheme = "wss"
	}
	return scheme + "://" + c.Host + ":" + strconv.Itoa(c.Port) + c.Path
}

func (c *Config) debugf(format string, args ...interface{}) {
	if c.Debug && c.Logger != nil {
		c.Logger.Debugf(format, args...)
	}
}

func (c *Config) verbosef(format string, args ...interface{}) {
	if c.Verbose && c.Logger != nil {
		c.Logger.Debugf(format, args...)
	}
}
