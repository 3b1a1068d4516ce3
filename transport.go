package gremlex

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// transport is the narrow interface the worker depends on, satisfied by
// *wsTransport in production and by a fake in tests. ReadText blocks for the
// next text frame; ping/pong and close frames never reach the caller —
// gorilla/websocket handles ping/pong via the handlers registered at dial
// time, and a close frame surfaces as an error from the underlying read, not
// as a distinct message type.
type transport interface {
	WriteText(payload []byte) error
	ReadText() ([]byte, error)
	Close() error
}

// wsTransport is a transport backed by a gorilla/websocket connection, with
// permessage-deflate negotiated at dial time and read/write deadlines driven
// by the worker's configured timeouts.
type wsTransport struct {
	conn         *websocket.Conn
	writeTimeout time.Duration
	readingWait  time.Duration
}

// dial opens a new WebSocket connection to cfg's URL, negotiating
// permessage-deflate compression and installing a ping handler that replies
// with pong (gorilla/websocket's default ping handler already does this; it
// is set explicitly here so the behavior is not left implicit).
func dial(cfg *Config) (*wsTransport, error) {
	dialer := &websocket.Dialer{
		HandshakeTimeout:  cfg.DialTimeout,
		EnableCompression: true,
	}
	var tlsServerName string
	var insecureSkipVerify bool
	if cfg.Opts != nil {
		tlsServerName = cfg.Opts.TLSServerName
		insecureSkipVerify = cfg.Opts.InsecureSkipVerify
	}
	if cfg.Secure {
		dialer.TLSClientConfig = tlsConfig(tlsServerName, insecureSkipVerify)
	}

	conn, _, err := dialer.Dial(cfg.URL(), nil)
	if err != nil {
		return nil, fmt.Errorf("gremlex: dial: %w", err)
	}
	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(cfg.Timeout))
	})
	return &wsTransport{conn: conn, writeTimeout: cfg.Timeout, readingWait: cfg.ReadingWait}, nil
}

func (w *wsTransport) WriteText(payload []byte) error {
	if err := w.conn.SetWriteDeadline(time.Now().Add(w.writeTimeout)); err != nil {
		return err
	}
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

// WritePing sends a ping control frame. Its caller (the worker's keep-alive
// loop) logs failures but never treats them as a connection error: only a
// subsequent read or write failure triggers reconnection.
func (w *wsTransport) WritePing() error {
	return w.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(w.writeTimeout))
}

// ReadText reads the next message and returns its payload. Binary frames are
// returned as-is (the server never sends them in this protocol, but nothing
// here presumes TextMessage specifically). A close frame or any transport
// failure surfaces as a non-nil error, indistinguishable at this layer from
// any other read error — both are handled identically by the caller.
//
// A read deadline is set before every read, mirroring the paired
// SetWriteDeadline in WriteText: without it, a stalled or half-open
// connection blocks ReadMessage forever and the read pump never calls
// Worker.reconnect, since that's only ever triggered by a read error.
func (w *wsTransport) ReadText() ([]byte, error) {
	if w.readingWait > 0 {
		if err := w.conn.SetReadDeadline(time.Now().Add(w.readingWait)); err != nil {
			return nil, err
		}
	}
	_, payload, err := w.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (w *wsTransport) Close() error {
	return w.conn.Close()
}

func tlsConfig(serverName string, insecureSkipVerify bool) *tls.Config {
	return &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: insecureSkipVerify,
	}
}
