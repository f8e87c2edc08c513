// LibrePCB - Professional EDA for everyone!
// Copyright (C) 2013 LibrePCB Developers, 2013 Urban Bruhin
// https://librepcb.org/
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package drc

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/LibrePCB/LibrePCB-sub022/board"
)

// Snapshot builds the immutable *board.Data the scheduler runs against.
// Implementations normally force-rebuild planes (unless quick) and airwires
// against the live board first; that rebuild is out of scope for this
// module (see board.NewData) and lives entirely behind this function.
type Snapshot func() (*board.Data, error)

// Orchestrator drives one DRC run end to end: it builds the snapshot,
// hands it to a Scheduler on a background goroutine, and relays lifecycle
// callbacks to a DrcSink. It mirrors spec.md §2/§5's
// "start/cancel/waitForFinished" control flow.
type Orchestrator struct {
	sink DrcSink
	log  *logrus.Entry

	schedMu sync.Mutex
	sched   *Scheduler

	started chan struct{}
	done    chan struct{}
	result  Result
}

// NewOrchestrator prepares an orchestrator reporting through sink. A nil
// sink is replaced with NopSink. A nil logger falls back to logrus's
// standard logger.
func NewOrchestrator(sink DrcSink, log *logrus.Entry) *Orchestrator {
	if sink == nil {
		sink = NopSink{}
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Orchestrator{
		sink:    sink,
		log:     log,
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start builds the snapshot and launches the scheduler on a new goroutine.
// It returns immediately; progress, status, and completion arrive through
// the sink. Start must be called exactly once per Orchestrator.
func (o *Orchestrator) Start(snap Snapshot) {
	go o.run(snap)
}

func (o *Orchestrator) run(snap Snapshot) {
	defer close(o.done)

	o.sink.OnStarted()
	close(o.started)

	o.sink.OnStatus("Rebuilding planes and airwires...")
	o.sink.OnProgress(0)

	data, err := snap()
	if err != nil {
		o.log.WithError(err).Error("failed to build DRC snapshot")
		o.result = Result{Errors: []string{fmt.Sprintf("snapshot: %v", err)}}
		o.sink.OnFinished(o.result)
		return
	}

	o.sink.OnProgress(20)

	o.schedMu.Lock()
	o.sched = NewScheduler(data, o.sink)
	sched := o.sched
	o.schedMu.Unlock()

	o.result = sched.Run()

	for _, e := range o.result.Errors {
		o.log.WithField("error", e).Warn("DRC job failed")
	}

	o.sink.OnProgress(100)
	o.sink.OnFinished(o.result)
}

// Cancel requests cooperative cancellation of the in-flight run. It is a
// no-op if no scheduler has been created yet (the run is still snapshotting)
// or if the run has already finished.
func (o *Orchestrator) Cancel() {
	<-o.started
	o.schedMu.Lock()
	sched := o.sched
	o.schedMu.Unlock()
	if sched != nil {
		sched.Cancel()
	}
}

// WaitForFinished blocks until the run started by Start has produced its
// Result, then returns it.
func (o *Orchestrator) WaitForFinished() Result {
	<-o.done
	return o.result
}
