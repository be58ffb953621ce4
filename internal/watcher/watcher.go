// Package watcher implements the session-scoped medicine matcher: while a
// session is open it polls the medicines list and alerts the user when the
// wall clock reaches a medicine's configured time, at most once per
// (medicine, day, minute).
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmhodges/clock"

	"healthnudge/internal/dedup"
	"healthnudge/internal/model"
	"healthnudge/internal/session"
	"healthnudge/internal/timeofday"
)

const (
	defaultPollInterval  = 5 * time.Second
	defaultCheckInterval = 10 * time.Second
	pruneHorizon         = 48 * time.Hour
)

// Watcher owns the two periodic loops of the client matcher: refreshing the
// cached medicine list and checking it against the current minute. Both run
// on a single goroutine inside Run, so the cache needs no locking; Run
// returns when the context is cancelled or the session ends.
type Watcher struct {
	source  Source
	desktop Desktop
	inapp   InApp
	clk     clock.Clock
	logger  *log.Logger

	token         string
	pollInterval  time.Duration
	checkInterval time.Duration

	seen      *dedup.Tracker
	medicines []model.Medicine
	lastDay   string
	prompted  bool
}

// Option adjusts watcher construction.
type Option func(*Watcher)

// WithIntervals overrides the poll and check cadences. The check cadence
// must stay at or under a minute or minute boundaries can be skipped.
func WithIntervals(poll, check time.Duration) Option {
	return func(w *Watcher) {
		w.pollInterval = poll
		w.checkInterval = check
	}
}

// WithSessionToken makes the watcher stop once the token's expiry passes.
func WithSessionToken(token string) Option {
	return func(w *Watcher) {
		w.token = token
	}
}

// New creates a Watcher.
func New(source Source, desktop Desktop, inapp InApp, clk clock.Clock, logger *log.Logger, opts ...Option) *Watcher {
	w := &Watcher{
		source:        source,
		desktop:       desktop,
		inapp:         inapp,
		clk:           clk,
		logger:        logger,
		pollInterval:  defaultPollInterval,
		checkInterval: defaultCheckInterval,
		seen:          dedup.NewTracker(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run drives both loops until ctx is cancelled or the session expires.
func (w *Watcher) Run(ctx context.Context) {
	w.promptOnce()
	w.Refresh(ctx)
	w.Check(w.clk.Now())

	poll := time.NewTicker(w.pollInterval)
	defer poll.Stop()
	check := time.NewTicker(w.checkInterval)
	defer check.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Printf("watcher: stopping: %v", ctx.Err())
			return
		case <-poll.C:
			if w.sessionExpired() {
				w.logger.Printf("watcher: session expired, stopping")
				return
			}
			if err := w.Refresh(ctx); errors.Is(err, session.ErrExpired) {
				w.logger.Printf("watcher: session rejected by server, stopping")
				return
			}
		case <-check.C:
			w.Check(w.clk.Now())
		}
	}
}

// Refresh re-fetches the medicine list. A fetch failure keeps the existing
// cache; stale data is preferred over an empty list.
func (w *Watcher) Refresh(ctx context.Context) error {
	medicines, err := w.source.ListMedicines(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrExpired) {
			w.logger.Printf("watcher: refresh failed, keeping %d cached medicines: %v", len(w.medicines), err)
		}
		return err
	}
	w.medicines = medicines
	return nil
}

// Check compares the cached medicines against now at minute granularity and
// alerts for each match not yet delivered this minute. Calling it any
// number of times within the same minute delivers each alert once.
func (w *Watcher) Check(now time.Time) {
	day := timeofday.DayKey(now)
	if day != w.lastDay {
		w.seen.Prune(now.Add(-pruneHorizon))
		w.lastDay = day
	}

	current := timeofday.Clock(now)
	for _, med := range w.medicines {
		if med.Time == "" || !med.IsActive {
			continue
		}
		if med.Time != current {
			continue
		}
		key := dedup.NewKey("medicine", med.ID, day, current)
		if !w.seen.MarkOnce(key, now) {
			continue
		}
		w.alert(med)
	}
}

// alert delivers one reminder: a best-effort desktop notification when
// permission is granted, and the in-app message always.
func (w *Watcher) alert(med model.Medicine) {
	title := "Time to take your medicine!"
	body := fmt.Sprintf("Take %s (%s).", med.Name, med.Dosage)
	if med.Instructions != "" {
		body += " " + med.Instructions
	}

	switch w.desktop.Permission() {
	case PermissionGranted:
		if err := w.desktop.Push(title, body); err != nil {
			w.logger.Printf("watcher: desktop notification failed: %v", err)
		}
	default:
		w.logger.Printf("watcher: desktop notifications unavailable, in-app only")
	}

	w.inapp.Show(body)
}

// promptOnce surfaces a one-time in-app offer to enable desktop
// notifications when permission was never asked. The actual permission
// request requires a user gesture, so it is never made here.
func (w *Watcher) promptOnce() {
	if w.prompted || w.desktop.Permission() != PermissionNotAsked {
		return
	}
	w.prompted = true
	w.inapp.Show("Enable desktop notifications? We can remind you about your medicines even when this page is in the background.")
}

func (w *Watcher) sessionExpired() bool {
	if w.token == "" {
		return false
	}
	return session.TokenExpired(w.token, w.clk.Now())
}
