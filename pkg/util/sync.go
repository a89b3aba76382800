// pkg/util/sync.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"encoding/json"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mmp/adrcore/pkg/log"
)

///////////////////////////////////////////////////////////////////////////
// AtomicBool

// AtomicBool is a simple wrapper around atomic.Bool that adds support for
// JSON marshaling/unmarshaling.
type AtomicBool struct {
	atomic.Bool
}

func (a AtomicBool) MarshalJSON() ([]byte, error) {
	b := a.Load()
	return json.Marshal(b)
}

func (a *AtomicBool) UnmarshalJSON(data []byte) error {
	var b bool
	err := json.Unmarshal(data, &b)
	if err == nil {
		a.Store(b)
	}
	return err
}

///////////////////////////////////////////////////////////////////////////
// RWGuard

// RWGuard wraps a sync.RWMutex with logging so that long waits to acquire
// the lock and long hold times are visible in the log rather than silently
// serializing callers. It is the mechanism by which "the caller must
// serialize mutation" is enforced in code: a Database or cdr.AUPStore
// holds an RWGuard and calls Lock/RLock around operations that read or
// write its shared state.
var heldGuardsMutex sync.Mutex
var heldGuards map[*RWGuard]interface{} = make(map[*RWGuard]interface{})

type RWGuard struct {
	mu       sync.RWMutex
	acq      time.Time
	acqStack []log.StackFrame
}

// Lock acquires the guard for exclusive (read-write) access.
func (g *RWGuard) Lock(lg *log.Logger) {
	tryTime := time.Now()
	lg.Debug("attempting to acquire guard", slog.Any("guard", g))

	if !g.mu.TryLock() {
		locked := make(chan struct{}, 1)

		go func() {
			g.mu.Lock()
			locked <- struct{}{}
		}()

		select {
		case <-locked:

		case <-time.After(10 * time.Second):
			lg.Error("unable to acquire guard after 10 seconds", slog.Any("guard", g),
				slog.Any("held_guards", heldGuards))

			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			lg.Errorf("alloc: %dMB total alloc: %dMB sys mem: %dMB goroutines: %d",
				m.Alloc/(1024*1024), m.TotalAlloc/(1024*1024), m.Sys/(1024*1024),
				runtime.NumGoroutine())

			<-locked
		}
	}

	g.noteAcquired(lg, tryTime)
}

// RLock acquires the guard for shared (read-only) access.
func (g *RWGuard) RLock(lg *log.Logger) {
	tryTime := time.Now()
	lg.Debug("attempting to acquire guard for read", slog.Any("guard", g))
	g.mu.RLock()
	g.noteAcquired(lg, tryTime)
}

func (g *RWGuard) noteAcquired(lg *log.Logger, tryTime time.Time) {
	heldGuardsMutex.Lock()
	heldGuards[g] = nil
	heldGuardsMutex.Unlock()

	g.acq = time.Now()
	g.acqStack = log.Callstack(g.acqStack)
	w := g.acq.Sub(tryTime)
	lg.Debug("acquired guard", slog.Any("guard", g), slog.Duration("wait", w))
	if w > time.Second {
		lg.Warn("long wait to acquire guard", slog.Any("guard", g), slog.Duration("wait", w))
	}
}

// Unlock releases a guard held for exclusive access.
func (g *RWGuard) Unlock(lg *log.Logger) {
	g.noteReleased(lg)
	g.mu.Unlock()
	lg.Debug("released guard", slog.Any("guard", g))
}

// RUnlock releases a guard held for shared access.
func (g *RWGuard) RUnlock(lg *log.Logger) {
	g.noteReleased(lg)
	g.mu.RUnlock()
	lg.Debug("released read guard", slog.Any("guard", g))
}

func (g *RWGuard) noteReleased(lg *log.Logger) {
	heldGuardsMutex.Lock()
	// Though it may seem like we could release this sooner, holding it
	// until this function returns ensures that if we end up doing logging
	// in the code below, other guards aren't released while we're trying
	// to log the held ones.
	defer heldGuardsMutex.Unlock()

	if _, ok := heldGuards[g]; !ok {
		lg.Error("guard not held", slog.Any("held_guards", heldGuards))
	}
	delete(heldGuards, g)

	if d := time.Since(g.acq); d > time.Second {
		lg.Warn("guard held for over 1 second", slog.Any("guard", g), slog.Duration("held", d),
			slog.Any("held_guards", heldGuards))
	}

	g.acq = time.Time{}
	g.acqStack = nil
}

func (g *RWGuard) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Time("acq", g.acq),
		slog.Duration("held", time.Since(g.acq)),
		slog.Any("acq_stack", g.acqStack))
}
