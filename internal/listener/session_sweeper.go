/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */


package listener

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionExpirer drops idle sessions and reports how many it removed.
type SessionExpirer interface {
	ExpireIdleSessions() int
}

// SessionSweeper periodically expires idle sessions in the background
type SessionSweeper struct {
	sessions SessionExpirer
	interval time.Duration

	swept int
	mutex sync.RWMutex

	// Control channels
	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
}

// NewSessionSweeper creates a sweeper; Start must be called to begin sweeping.
func NewSessionSweeper(sessions SessionExpirer, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start launches the sweep loop. A non-positive interval disables sweeping.
func (s *SessionSweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		zap.L().Info("Session sweeper disabled")
		close(s.doneChan)
		return
	}

	go s.sweepLoop(ctx)

	zap.L().Info("Session sweeper started", zap.Duration("interval", s.interval))
}

// Stop halts the sweep loop and waits for it to exit. Safe to call more than once.
func (s *SessionSweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	<-s.doneChan
	zap.L().Info("Session sweeper stopped", zap.Int("swept", s.Swept()))
}

// Swept returns the total number of sessions expired by this sweeper.
func (s *SessionSweeper) Swept() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.swept
}

func (s *SessionSweeper) sweepLoop(ctx context.Context) {
	defer close(s.doneChan)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *SessionSweeper) sweep() {
	expired := s.sessions.ExpireIdleSessions()
	if expired == 0 {
		return
	}

	s.mutex.Lock()
	s.swept += expired
	s.mutex.Unlock()

	zap.L().Debug("Swept idle sessions", zap.Int("expired", expired))
}
