// Package blp is the client for the market-data provider's session protocol.
//
// The provider exposes a stateful, session-oriented API: a session is started
// against a host:port endpoint, a service is opened on it, requests are
// submitted, and responses come back as asynchronous events whose messages are
// matched to the request by correlation id. Sessions are cheap and
// request-scoped here; nothing pools or reuses them.
package blp

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RefDataService is the service path for reference-data requests.
const RefDataService = "//blp/refdata"

// FieldLastPrice is the field id for the last traded price.
const FieldLastPrice = "PX_LAST"

// SessionOptions identifies the provider endpoint for one session.
type SessionOptions struct {
	Host        string
	Port        int
	DialTimeout time.Duration
}

// Addr returns the host:port dial address.
func (o SessionOptions) Addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// EventType classifies a provider event.
type EventType string

const (
	// EventTimeout is synthesized locally when no event arrives within the
	// poll bound; the provider never sends it on the wire.
	EventTimeout EventType = "TIMEOUT"

	// EventPartialResponse carries an intermediate slice of response messages.
	EventPartialResponse EventType = "PARTIAL_RESPONSE"

	// EventResponse is the final event of a response stream.
	EventResponse EventType = "RESPONSE"

	EventSessionStatus EventType = "SESSION_STATUS"
	EventServiceStatus EventType = "SERVICE_STATUS"
)

// Event is one provider event with zero or more messages.
type Event struct {
	Type     EventType `json:"eventType"`
	Messages []Message `json:"messages,omitempty"`
}

// Message is one response message within an event.
type Message struct {
	CorrelationID string         `json:"correlationId"`
	ResponseError *ErrorInfo     `json:"responseError,omitempty"`
	SecurityData  []SecurityData `json:"securityData,omitempty"`
}

// SecurityData carries the per-security slice of a reference-data response.
// FieldData values are pointers so a present-but-null field (nil value) is
// distinguishable from an absent field (missing key).
type SecurityData struct {
	Security        string              `json:"security"`
	FieldExceptions []FieldException    `json:"fieldExceptions,omitempty"`
	SecurityError   *ErrorInfo          `json:"securityError,omitempty"`
	FieldData       map[string]*float64 `json:"fieldData,omitempty"`
}

// FieldException is a provider error scoped to a single requested field.
type FieldException struct {
	FieldID   string    `json:"fieldId"`
	ErrorInfo ErrorInfo `json:"errorInfo"`
}

// ErrorInfo is the provider's generic error payload.
type ErrorInfo struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message"`
}

// Request is a reference-data request for current field values.
type Request struct {
	Service       string   `json:"service"`
	Operation     string   `json:"operation"`
	CorrelationID string   `json:"correlationId"`
	Securities    []string `json:"securities"`
	Fields        []string `json:"fields"`
}

// NewReferenceDataRequest builds a reference-data request for one security
// with a fresh correlation id.
func NewReferenceDataRequest(security string, fields ...string) *Request {
	return &Request{
		Service:       RefDataService,
		Operation:     "ReferenceDataRequest",
		CorrelationID: uuid.NewString(),
		Securities:    []string{security},
		Fields:        fields,
	}
}

// Session is one live connection to the provider.
//
// Callers own the lifecycle: Start before anything else, Stop exactly once
// when done. A Session is not safe for concurrent use; each request flow gets
// its own.
//
//go:generate mockgen -package=bridge_test -destination=../bridge/mock_session_test.go -source=session.go Session
type Session interface {
	// Start establishes the session. The session must be stopped even when
	// Start fails.
	Start() error

	// OpenService opens a service path (e.g. RefDataService) on the session.
	OpenService(name string) error

	// SendRequest submits a request and returns its correlation id.
	SendRequest(req *Request) (string, error)

	// NextEvent blocks up to timeout for the next provider event. When the
	// bound elapses it returns an Event of type EventTimeout, not an error.
	NextEvent(timeout time.Duration) (Event, error)

	// Stop tears the session down.
	Stop() error
}
