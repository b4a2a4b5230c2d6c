package blp

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"
)

const defaultDialTimeout = 10 * time.Second

var _ Session = (*TCPSession)(nil)

// control is the client->server envelope for session management messages.
type control struct {
	Type    string   `json:"type"`
	Service string   `json:"service,omitempty"`
	Request *Request `json:"request,omitempty"`
}

// ack is the server->client reply to a control message.
type ack struct {
	Type   string `json:"type"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// TCPSession implements Session over the provider's newline-delimited JSON
// wire protocol: control messages and requests go out as single lines, acks
// and events come back as single lines on the same connection.
type TCPSession struct {
	opts    SessionOptions
	conn    net.Conn
	r       *bufio.Reader
	stopped bool
}

// NewTCPSession returns an unstarted session for the given endpoint.
func NewTCPSession(opts SessionOptions) *TCPSession {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultDialTimeout
	}
	return &TCPSession{opts: opts}
}

// Start dials the endpoint and performs the session handshake.
func (s *TCPSession) Start() error {
	conn, err := net.DialTimeout("tcp", s.opts.Addr(), s.opts.DialTimeout)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.opts.Addr(), err)
	}
	s.conn = conn
	s.r = bufio.NewReader(conn)

	if err := s.sendLine(control{Type: "sessionStart"}); err != nil {
		return fmt.Errorf("session handshake: %w", err)
	}
	a, err := s.readAck(s.opts.DialTimeout)
	if err != nil {
		return fmt.Errorf("session handshake: %w", err)
	}
	if a.Type != "sessionStarted" || !a.OK {
		return fmt.Errorf("session rejected: %s", a.Reason)
	}
	return nil
}

// OpenService opens a service path on the started session.
func (s *TCPSession) OpenService(name string) error {
	if s.conn == nil {
		return errors.New("session not started")
	}
	if err := s.sendLine(control{Type: "openService", Service: name}); err != nil {
		return fmt.Errorf("open service %s: %w", name, err)
	}
	a, err := s.readAck(s.opts.DialTimeout)
	if err != nil {
		return fmt.Errorf("open service %s: %w", name, err)
	}
	if a.Type != "serviceOpened" || !a.OK {
		return fmt.Errorf("service %s rejected: %s", name, a.Reason)
	}
	return nil
}

// SendRequest submits a request and returns its correlation id. Response
// events are read via NextEvent.
func (s *TCPSession) SendRequest(req *Request) (string, error) {
	if s.conn == nil {
		return "", errors.New("session not started")
	}
	if err := s.sendLine(control{Type: "request", Request: req}); err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	return req.CorrelationID, nil
}

// NextEvent blocks up to timeout for the next event line. Read deadline
// expiry maps to an EventTimeout event rather than an error.
func (s *TCPSession) NextEvent(timeout time.Duration) (Event, error) {
	if s.conn == nil {
		return Event{}, errors.New("session not started")
	}
	if err := s.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return Event{}, fmt.Errorf("set read deadline: %w", err)
	}
	line, err := s.r.ReadBytes('\n')
	if err != nil {
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return Event{Type: EventTimeout}, nil
		}
		return Event{}, fmt.Errorf("read event: %w", err)
	}
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return ev, nil
}

// Stop tears the session down. Safe to call on a session whose Start failed;
// repeated calls are no-ops.
func (s *TCPSession) Stop() error {
	if s.stopped {
		return nil
	}
	s.stopped = true
	if s.conn == nil {
		return nil
	}
	// Best-effort goodbye; the close is what matters.
	_ = s.sendLine(control{Type: "sessionStop"})
	return s.conn.Close()
}

func (s *TCPSession) sendLine(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.opts.DialTimeout)); err != nil {
		return err
	}
	_, err = s.conn.Write(append(b, '\n'))
	return err
}

func (s *TCPSession) readAck(timeout time.Duration) (ack, error) {
	if err := s.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return ack{}, err
	}
	line, err := s.r.ReadBytes('\n')
	if err != nil {
		return ack{}, err
	}
	var a ack
	if err := json.Unmarshal(line, &a); err != nil {
		return ack{}, fmt.Errorf("decode ack: %w", err)
	}
	return a, nil
}
