package rpc

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned for queries issued before the connection handshake completed.
	ErrNotReady = errors.New("chain client not ready")
	// ErrNoEndpoints is returned when a client was built without any LCD endpoint.
	ErrNoEndpoints = errors.New("no endpoints configured")
)

// RemoteError is a non-2xx answer from an LCD endpoint. Code and Message come from the
// gateway error body ({"code": 3, "message": "..."}) when one was sent.
type RemoteError struct {
	Endpoint string
	Status   int
	Code     int
	Message  string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// ConnectionError means the chain connection could not be established or verified.
// Stage names the step that failed: "handshake", "chain-id", "verify-contract" or "ready".
type ConnectionError struct {
	Endpoint string
	Stage    string
	Err      error
}

func (e *ConnectionError) Error() string {
	if e.Endpoint == "" {
		return fmt.Sprintf("chain connection (%s): %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("chain connection to %s (%s): %v", e.Endpoint, e.Stage, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError is a failed smart query. Message holds the remote diagnostic text if the node sent one.
type QueryError struct {
	Contract string
	Query    string
	Status   int
	Message  string
	Timeout  bool
	Err      error
}

func (e *QueryError) Error() string {
	reason := e.Message
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	if e.Timeout {
		reason = "timeout: " + reason
	}
	return fmt.Sprintf("query %s on %s: %s", e.Query, e.Contract, reason)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ShapeError is a response that decoded fine but had the wrong structure.
type ShapeError struct {
	Query    string
	Expected string
	Got      string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected %s response: expected %s, got %s", e.Query, e.Expected, e.Got)
}
