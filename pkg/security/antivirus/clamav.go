package antivirus

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"strings"
	"time"
)

// chunkSize stays well below clamd's default StreamMaxLength chunking.
const chunkSize = 64 * 1024

// ClamAVScanner talks to clamd over the INSTREAM protocol.
type ClamAVScanner struct {
	network string
	address string
	timeout time.Duration
}

var _ Scanner = (*ClamAVScanner)(nil)

// NewClamAVScanner accepts "host:port" or an absolute unix socket path.
func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	network := "tcp"
	if strings.HasPrefix(address, "/") {
		network = "unix"
	}
	return &ClamAVScanner{network: network, address: address, timeout: timeout}
}

func (c *ClamAVScanner) Name() string {
	return "clamav"
}

func (c *ClamAVScanner) dial(parent context.Context) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(parent, c.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, c.network, c.address)
	if err != nil {
		return nil, fmt.Errorf("clamd: connect: %w", err)
	}
	deadline := time.Now().Add(c.timeout)
	if d, ok := parent.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)
	return conn, nil
}

// Ping reports whether clamd answers PONG.
func (c *ClamAVScanner) Ping(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return fmt.Errorf("clamd: ping: %w", err)
	}
	reply, err := readReply(conn)
	if err != nil {
		return err
	}
	if reply != "PONG" {
		return fmt.Errorf("clamd: unexpected ping reply %q", reply)
	}
	return nil
}

func (c *ClamAVScanner) Scan(ctx context.Context, data []byte) (Verdict, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return Verdict{}, err
	}
	defer conn.Close()

	w := bufio.NewWriter(conn)
	if _, err := w.WriteString("zINSTREAM\x00"); err != nil {
		return Verdict{}, fmt.Errorf("clamd: send command: %w", err)
	}

	// Each chunk is prefixed with its length as a big-endian uint32; a zero
	// length terminates the stream.
	var size [4]byte
	for len(data) > 0 {
		n := min(len(data), chunkSize)
		binary.BigEndian.PutUint32(size[:], uint32(n))
		if _, err := w.Write(size[:]); err != nil {
			return Verdict{}, fmt.Errorf("clamd: send chunk: %w", err)
		}
		if _, err := w.Write(data[:n]); err != nil {
			return Verdict{}, fmt.Errorf("clamd: send chunk: %w", err)
		}
		data = data[n:]
	}
	binary.BigEndian.PutUint32(size[:], 0)
	if _, err := w.Write(size[:]); err != nil {
		return Verdict{}, fmt.Errorf("clamd: send terminator: %w", err)
	}
	if err := w.Flush(); err != nil {
		return Verdict{}, fmt.Errorf("clamd: flush: %w", err)
	}

	reply, err := readReply(conn)
	if err != nil {
		return Verdict{}, err
	}
	return parseReply(reply)
}

func readReply(conn net.Conn) (string, error) {
	reply, err := bufio.NewReader(conn).ReadString(0)
	if err != nil && reply == "" {
		return "", fmt.Errorf("clamd: read reply: %w", err)
	}
	return strings.TrimSpace(strings.TrimRight(reply, "\x00")), nil
}

// parseReply understands "stream: OK", "stream: <name> FOUND" and "... ERROR".
func parseReply(reply string) (Verdict, error) {
	_, status, _ := strings.Cut(reply, ":")
	status = strings.TrimSpace(status)

	switch {
	case status == "OK":
		return Verdict{}, nil
	case strings.HasSuffix(status, " FOUND"):
		return Verdict{Infected: true, Threat: strings.TrimSuffix(status, " FOUND")}, nil
	default:
		return Verdict{}, fmt.Errorf("clamd: scan failed: %s", reply)
	}
}
