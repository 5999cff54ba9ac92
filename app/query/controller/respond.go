package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-jose/go-jose/v4/json"
	"github.com/pagedao/daoquery/pkg/rpc"
	"go.uber.org/zap"
)

// InputError is a missing or malformed request parameter.
type InputError struct {
	Param  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("parameter %s %s", e.Param, e.Reason)
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// statusOf maps an error to the response status.
func statusOf(err error) int {
	var inErr *InputError
	var connErr *rpc.ConnectionError
	switch {
	case errors.As(err, &inErr):
		return http.StatusBadRequest
	case errors.As(err, &connErr), errors.Is(err, rpc.ErrNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err and answers with msg; the cause goes to details, input errors are reported as is.
func (c *Controller) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status := statusOf(err)

	fields := []zap.Field{
		zap.String("route", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	var qe *rpc.QueryError
	if errors.As(err, &qe) {
		fields = append(fields, zap.String("query", qe.Query), zap.String("contract", qe.Contract))
	}

	switch status {
	case http.StatusBadRequest:
		c.App.Logger.Warn("Rejected request", fields...)
		writeError(w, status, err.Error())
		return
	case http.StatusServiceUnavailable:
		c.App.Logger.Warn(msg, fields...)
		writeJSON(w, status, errorBody{Error: "chain connection not ready", Details: err.Error()})
		return
	}

	c.App.Logger.Error(msg, fields...)
	writeJSON(w, status, errorBody{Error: msg, Details: err.Error()})
}

// requireParam returns a non-empty query parameter.
func requireParam(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", &InputError{Param: name, Reason: "is required"}
	}
	return v, nil
}

// heightParam parses the optional height. Absent means the current height and is returned as nil.
func heightParam(r *http.Request) (*uint64, error) {
	v := r.URL.Query().Get("height")
	if v == "" {
		return nil, nil
	}
	h, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, &InputError{Param: "height", Reason: "must be a non-negative integer"}
	}
	return &h, nil
}
