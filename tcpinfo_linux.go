//go:build linux

package gremlex

import (
	"errors"
	"net"
	"syscall"
	"unsafe"
)

// TCPInfo is the subset of Linux's struct tcp_info exposed for diagnostics.
type TCPInfo syscall.TCPInfo

func getsockopt(s int, level int, name int, val uintptr, vallen *uint32) (err error) {
	_, _, e1 := syscall.Syscall6(syscall.SYS_GETSOCKOPT, uintptr(s), uintptr(level), uintptr(name), uintptr(val), uintptr(unsafe.Pointer(vallen)), 0)
	if e1 != 0 {
		err = e1
	}
	return
}

// getsockoptTCPInfo reads TCP_INFO off the underlying socket of a
// *net.TCPConn, used by Worker.Stats to surface round-trip diagnostics for
// the connection currently held open.
func getsockoptTCPInfo(conn net.Conn) (*TCPInfo, error) {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil, errors.New("gremlex: underlying connection is not a TCPConn")
	}

	file, err := tcpConn.File()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	fd := file.Fd()
	tcpInfo := TCPInfo{}
	size := uint32(unsafe.Sizeof(tcpInfo))
	if err := getsockopt(int(fd), syscall.SOL_TCP, syscall.TCP_INFO, uintptr(unsafe.Pointer(&tcpInfo)), &size); err != nil {
		return nil, err
	}
	return &tcpInfo, nil
}

// Stats returns the current connection's TCP_INFO diagnostics (round-trip
// time, retransmits, and so on). It is only available on Linux and only
// while the worker holds an active connection.
func (w *Worker) Stats() (*TCPInfo, error) {
	w.mu.Lock()
	tr := w.transport
	w.mu.Unlock()

	ws, ok := tr.(*wsTransport)
	if !ok || ws == nil {
		return nil, ErrConnectionUnavailable
	}
	return getsockoptTCPInfo(ws.conn.UnderlyingConn())
}
