// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"
)

// cancelManager owns the context every exchange runs under. Exchanges are
// never cancelled one by one; closing the program cancels them all.
// Held by pointer so bubbletea's model copies share one mutex.
type cancelManager struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func newCancelManager(parent context.Context) *cancelManager {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &cancelManager{ctx: ctx, cancel: cancel}
}

// context returns the shared exchange context.
func (cm *cancelManager) context() context.Context {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.ctx
}

// shutdown cancels every outstanding exchange. Safe to call more than once.
func (cm *cancelManager) shutdown() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancel != nil {
		cm.cancel()
		cm.cancel = nil
	}
}
