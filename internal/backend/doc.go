// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the text-generation endpoint.
//
// The endpoint speaks a single request/response exchange:
//
//	POST <url>
//	Content-Type: application/json
//
//	{"prompt": "What is Chainlink?"}
//
// and answers with
//
//	{"ans": "Chainlink is a decentralized oracle network."}
//
// # Key Types
//
//   - Transport: the interface the conversation controller depends on
//   - Client: net/http implementation of Transport
//   - TransportError: typed failure (network, status, malformed body)
//
// # Usage
//
//	client := backend.NewClient(backend.DefaultConfig())
//	reply, err := client.Send(ctx, "What is Chainlink?")
//	var terr *backend.TransportError
//	if errors.As(err, &terr) {
//	    fmt.Println(terr.Kind)
//	}
//
// The client never retries and sets no request timeout. A hung request
// blocks its exchange until ctx is cancelled.
package backend
