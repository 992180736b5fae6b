// Package httputil writes the portal's standard JSON response envelope.
//
// Every response has the shape
//
//	{"success": bool, "data": any, "msg": string, "totalResults": int}
//
// where totalResults is present only when the handler reports a count.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	dErrors "mapportal/pkg/domain-errors"
	"mapportal/pkg/platform/sentinel"
)

// Messages shown to portal clients when an operation fails.
const (
	MsgOperationFailed  = "The operation performed did not complete successfully."
	MsgFilterFailed     = "An error occurred when performing this query."
	MsgNoResults        = "No results matched your query."
	MsgServiceUnreached = "The service you wish to query can not be reached."
	MsgOperationTimeout = "The service is taking too long to respond."
)

// Envelope is the response body for every portal endpoint.
type Envelope struct {
	Success      bool   `json:"success"`
	Data         any    `json:"data"`
	Msg          string `json:"msg"`
	TotalResults *int   `json:"totalResults,omitempty"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a successful envelope. total may be nil.
func WriteSuccess(w http.ResponseWriter, data any, total *int) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, TotalResults: total})
}

// WriteError translates err into a failed envelope. Upstream outages and
// timeouts get the portal's fixed messages; validation errors expose their
// message; anything else is reported generically.
func WriteError(w http.ResponseWriter, err error) {
	status, msg := classify(err)
	WriteJSON(w, status, Envelope{Success: false, Msg: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, sentinel.ErrUnavailable), dErrors.HasCode(err, dErrors.CodeUnavailable):
		return http.StatusServiceUnavailable, MsgServiceUnreached
	case errors.Is(err, context.DeadlineExceeded), dErrors.HasCode(err, dErrors.CodeTimeout):
		return http.StatusGatewayTimeout, MsgOperationTimeout
	case errors.Is(err, sentinel.ErrNotFound):
		return http.StatusNotFound, MsgNoResults
	}

	var de *dErrors.Error
	if errors.As(err, &de) {
		status := dErrors.ToHTTPStatus(de.Code)
		if status == http.StatusInternalServerError {
			return status, MsgFilterFailed
		}
		return status, de.Message
	}
	return http.StatusInternalServerError, MsgFilterFailed
}
