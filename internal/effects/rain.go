// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/rain.go
// Summary: Falling-label rain effect driven by its own ticker goroutine.
// Usage: The reporter submits one label per started test; Stop joins the worker before teardown.

package effects

import (
	"context"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"pkt.systems/pslog"

	"github.com/framegrace/testrain/surface"
)

// Default rain timings.
const (
	DefaultTick     = 10 * time.Millisecond
	DefaultSpeedMin = 100 * time.Millisecond
	DefaultSpeedMax = 200 * time.Millisecond
	DefaultSizeMin  = 10
	DefaultSizeMax  = 20
)

// Options tunes the rain effect. Zero fields take the defaults.
type Options struct {
	Tick     time.Duration
	SpeedMin time.Duration
	SpeedMax time.Duration
	SizeMin  int
	SizeMax  int

	// Rand drives column ties, speeds and sizes.
	Rand *rand.Rand
	// Now is the clock used by the ticker loop.
	Now func() time.Time
}

type job struct {
	label []rune
	style surface.Style
}

// Rain owns every falling blob. Producers only call Submit; all blob state is
// touched by the worker goroutine alone.
type Rain struct {
	s    surface.Surface
	opts Options
	rng  *rand.Rand

	mu    sync.Mutex
	queue []job

	blobs map[int][]*blob

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
	wg        sync.WaitGroup
}

// NewRain prepares a rain effect over s. Call Start to begin animating.
func NewRain(s surface.Surface, opts Options) *Rain {
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.SpeedMin <= 0 {
		opts.SpeedMin = DefaultSpeedMin
	}
	if opts.SpeedMax <= 0 {
		opts.SpeedMax = DefaultSpeedMax
	}
	if opts.SpeedMax < opts.SpeedMin {
		opts.SpeedMax = opts.SpeedMin
	}
	if opts.SizeMin <= 0 {
		opts.SizeMin = DefaultSizeMin
	}
	if opts.SizeMax <= 0 {
		opts.SizeMax = DefaultSizeMax
	}
	if opts.SizeMax < opts.SizeMin {
		opts.SizeMax = opts.SizeMin
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>17|1))
	}
	return &Rain{
		s:     s,
		opts:  opts,
		rng:   rng,
		blobs: make(map[int][]*blob),
		stop:  make(chan struct{}),
	}
}

// Submit queues a label. It never blocks.
func (r *Rain) Submit(label string, style surface.Style) {
	if label == "" {
		return
	}
	r.mu.Lock()
	r.queue = append(r.queue, job{label: []rune(label), style: style})
	r.mu.Unlock()
}

// Pending returns the number of queued labels not yet falling.
func (r *Rain) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Start launches the worker. Calling it again has no effect.
func (r *Rain) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		r.wg.Add(1)
		go r.run(ctx)
	})
}

// Stop signals the worker and waits until it has exited. It is safe to call
// more than once, and before Start.
func (r *Rain) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
	r.wg.Wait()
}

func (r *Rain) run(ctx context.Context) {
	defer r.wg.Done()
	log := pslog.Ctx(ctx)
	ticker := time.NewTicker(r.opts.Tick)
	defer ticker.Stop()

	log.Debug("rain started", "tick", r.opts.Tick)
	for {
		select {
		case <-r.stop:
			log.Debug("rain stopped", "pending", r.Pending())
			return
		case <-ctx.Done():
			log.Debug("rain cancelled", "err", ctx.Err())
			return
		case <-ticker.C:
			r.tick(r.opts.Now())
		}
	}
}

func (r *Rain) dequeue() (job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return job{}, false
	}
	j := r.queue[0]
	r.queue[0] = job{}
	r.queue = r.queue[1:]
	return j, true
}

// tick takes at most one queued label, then erases tails and advances every
// blob whose speed gate has elapsed.
func (r *Rain) tick(now time.Time) {
	if j, ok := r.dequeue(); ok {
		r.add(j, now)
	}

	columns := make([]int, 0, len(r.blobs))
	for col := range r.blobs {
		columns = append(columns, col)
	}
	sort.Ints(columns)

	for _, col := range columns {
		blobs := r.blobs[col]
		kept := blobs[:0]
		for i, b := range blobs {
			// A blob that entered the column later is still falling above this
			// one; never erase a cell at or above its head.
			limit := -1
			if i+1 < len(blobs) {
				limit = blobs[i+1].head
			}
			if erase := b.tail(); erase > limit {
				surface.Put(r.s, erase, col, ' ', surface.Plain)
			}
			if b.ready(now) && b.advance(r.s, now) {
				continue
			}
			kept = append(kept, b)
		}
		for i := len(kept); i < len(blobs); i++ {
			blobs[i] = nil
		}
		if len(kept) == 0 {
			delete(r.blobs, col)
			continue
		}
		r.blobs[col] = kept
	}
	r.s.Show()
}

func (r *Rain) add(j job, now time.Time) {
	col := r.chooseColumn()
	if col < 0 {
		return
	}
	speed := r.opts.SpeedMin
	if spread := r.opts.SpeedMax - r.opts.SpeedMin; spread > 0 {
		speed += time.Duration(r.rng.Float64() * float64(spread))
	}
	size := r.opts.SizeMin + r.rng.IntN(r.opts.SizeMax-r.opts.SizeMin+1)
	r.blobs[col] = append(r.blobs[col], newBlob(j.label, col, j.style, speed, size, now))
}

// chooseColumn returns the column whose most recent occupant has fallen the
// furthest, preferring empty columns, or -1 when the surface has no columns.
func (r *Rain) chooseColumn() int {
	rows, cols := r.s.Size()
	if cols <= 0 {
		return -1
	}
	mins := make([]int, cols)
	for col := range mins {
		mins[col] = rows
		for _, b := range r.blobs[col] {
			if b.head < mins[col] {
				mins[col] = b.head
			}
		}
	}
	return pickColumn(mins, r.rng)
}

// pickColumn returns an index holding the maximum of mins, chosen uniformly
// among ties.
func pickColumn(mins []int, rng *rand.Rand) int {
	if len(mins) == 0 {
		return -1
	}
	best := mins[0]
	for _, m := range mins[1:] {
		if m > best {
			best = m
		}
	}
	candidates := make([]int, 0, len(mins))
	for col, m := range mins {
		if m == best {
			candidates = append(candidates, col)
		}
	}
	return candidates[rng.IntN(len(candidates))]
}
