// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

// =============================================================================
// WIRE TYPES
// =============================================================================

// GenerateRequest is the request body posted to the endpoint.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateResponse is the response body returned by the endpoint.
// Ans is a pointer so a missing field can be told apart from an empty reply.
type GenerateResponse struct {
	Ans *string `json:"ans"`
}

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes transport failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindRequest
	KindNetwork
	KindStatus
	KindMalformed
)

// String returns a short lowercase name used in logs.
func (k ErrorKind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// TransportError is returned by Client.Send for every failed exchange.
type TransportError struct {
	Kind    ErrorKind
	Message string
	Status  int // HTTP status, when one was received
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
