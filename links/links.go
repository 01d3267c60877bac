// Package links validates external URLs that pages embed: YouTube videos and
// Amazon affiliate links. Validators never fail with a Go error; an invalid
// input is reported through Result.Reason so templates can branch on it.
package links

import (
	"encoding/json"
	"fmt"
)

// Reason classifies why a URL was rejected. The zero value means success.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonEmpty
	ReasonMalformed
	ReasonUnsupportedHost
	ReasonNoIdentifier
	ReasonInvalidIdentifier
)

var reasonNames = map[Reason]string{
	ReasonNone:              "",
	ReasonEmpty:             "empty",
	ReasonMalformed:         "malformed-url",
	ReasonUnsupportedHost:   "unsupported-host",
	ReasonNoIdentifier:      "no-identifier",
	ReasonInvalidIdentifier: "invalid-identifier",
}

var reasonMessages = map[Reason]string{
	ReasonEmpty:             "No URL provided",
	ReasonMalformed:         "Malformed URL",
	ReasonUnsupportedHost:   "Domain not supported",
	ReasonNoIdentifier:      "Could not extract an ID from the URL",
	ReasonInvalidIdentifier: "The extracted ID has an invalid format",
}

// String returns a stable machine-readable token for r.
func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// Message returns human-readable text for r, suitable for an inline error.
func (r Reason) Message() string {
	return reasonMessages[r]
}

// Result is the outcome of validating a URL. Exactly one of Value and Reason
// is set: a non-empty Value with ReasonNone, or an empty Value with a failure
// reason.
type Result struct {
	Value  string
	Reason Reason
}

func ok(v string) Result { return Result{Value: v} }

func fail(r Reason) Result { return Result{Reason: r} }

// OK reports whether validation succeeded.
func (r Result) OK() bool {
	return r.Reason == ReasonNone
}

// Err returns nil on success and an *Error describing the failure otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Reason: r.Reason}
}

// MarshalJSON encodes r as {"normalizedValue": ..., "errorReason": ...} with
// the unset side as null.
func (r Result) MarshalJSON() ([]byte, error) {
	var out struct {
		NormalizedValue *string `json:"normalizedValue"`
		ErrorReason     *string `json:"errorReason"`
	}
	if r.OK() {
		v := r.Value
		out.NormalizedValue = &v
	} else {
		s := r.Reason.String()
		out.ErrorReason = &s
	}
	return json.Marshal(out)
}

// Error adapts a failed Result to the error interface.
type Error struct {
	Reason Reason
}

func (e *Error) Error() string {
	return "links: " + e.Reason.Message()
}
