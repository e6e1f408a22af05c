// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stub

import "strings"

type cannedAnswer struct {
	keywords []string
	text     string
}

// Checked in order; the first entry with a matching keyword wins.
var cannedAnswers = []cannedAnswer{
	{
		keywords: []string{"hello", "hi", "hey"},
		text:     "Hello! Ask me anything about Chainlink.",
	},
	{
		keywords: []string{"ccip", "cross-chain", "cross chain"},
		text:     "CCIP, the Cross-Chain Interoperability Protocol, lets smart contracts send tokens and messages across blockchains.",
	},
	{
		keywords: []string{"vrf", "random"},
		text:     "Chainlink VRF provides verifiable randomness: each random value comes with a cryptographic proof that it was generated fairly.",
	},
	{
		keywords: []string{"price feed", "data feed", "feeds"},
		text:     "Chainlink Data Feeds aggregate prices from many independent node operators and publish them on-chain.",
	},
	{
		keywords: []string{"link token", "link"},
		text:     "LINK is the token used to pay Chainlink node operators for their services.",
	},
	{
		keywords: []string{"oracle", "chainlink"},
		text:     "Chainlink is a decentralized oracle network that connects smart contracts to off-chain data and computation.",
	},
}

const fallbackAnswer = "I'm a stub endpoint with a handful of canned answers. Try asking about Chainlink, CCIP, VRF or price feeds."

// Answer picks a canned reply for prompt.
func Answer(prompt string) string {
	p := " " + strings.ToLower(prompt) + " "
	for _, a := range cannedAnswers {
		for _, kw := range a.keywords {
			if containsWord(p, kw) {
				return a.text
			}
		}
	}
	return fallbackAnswer
}

// containsWord reports whether kw appears in p bounded by non-letters.
func containsWord(p, kw string) bool {
	for i := 0; ; {
		j := strings.Index(p[i:], kw)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(kw)
		if !isWordByte(p[start-1]) && (end >= len(p) || !isWordByte(p[end])) {
			return true
		}
		i = start + 1
	}
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
