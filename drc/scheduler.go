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
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/LibrePCB/LibrePCB-sub022/board"
	"github.com/LibrePCB/LibrePCB-sub022/board/pathgen"
	"github.com/LibrePCB/LibrePCB-sub022/clipper"
	"github.com/LibrePCB/LibrePCB-sub022/drc/message"
	"github.com/LibrePCB/LibrePCB-sub022/drc/rules"
)

type jobKind int

const (
	kindStage1 jobKind = iota
	kindStage2
	kindIndependent
	kindSequential
)

type job struct {
	name   string
	weight int
	kind   jobKind
	run    func() ([]message.Message, error)
}

// Scheduler runs one DRC pass: it classifies jobs per spec.md §4.4, fans
// Stage-1 and Independent jobs out onto worker goroutines, joins Stage-1,
// fans Stage-2 out while running Sequential jobs inline, then joins
// everything outstanding.
type Scheduler struct {
	data *board.Data
	calc *CalculatedData
	sink DrcSink

	abort atomic.Bool

	statusMu sync.Mutex

	doneWeight  int64
	totalWeight int64

	resultMu sync.Mutex
	messages []message.Message
	errs     []string
}

// NewScheduler prepares a run over data, reporting through sink.
func NewScheduler(data *board.Data, sink DrcSink) *Scheduler {
	if sink == nil {
		sink = NopSink{}
	}
	return &Scheduler{data: data, calc: NewCalculatedData(), sink: sink}
}

// Cancel requests cooperative cancellation. Jobs already running are not
// interrupted; jobs not yet started resolve immediately with no messages.
func (s *Scheduler) Cancel() { s.abort.Store(true) }

func (s *Scheduler) buildJobs() []job {
	var jobs []job

	for _, l := range s.data.EnabledCopperLayers {
		l := l
		jobs = append(jobs, job{
			name:   fmt.Sprintf("Collect copper on layer %s...", l),
			weight: 5,
			kind:   kindStage1,
			run: func() ([]message.Message, error) {
				gen := pathgen.New()
				if err := gen.AddCopper(s.data, l, pathgen.MatchAllNets, s.data.Quick); err != nil {
					return nil, err
				}
				var paths clipper.Paths64
				gen.TakePathsTo(&paths)
				s.calc.SetCopperPaths(l, paths)
				return nil, nil
			},
		})
	}

	jobs = append(jobs,
		job{"Check copper clearances...", 30, kindIndependent, func() ([]message.Message, error) { return rules.CheckCopperCopperClearance(s.data) }},
		job{"Check board clearances...", 15, kindIndependent, func() ([]message.Message, error) { return rules.CheckCopperBoardClearance(s.data) }},
		job{"Check drill clearances...", 10, kindIndependent, func() ([]message.Message, error) { return rules.CheckDrillDrillClearance(s.data) }},
		job{"Check drill-to-board clearances...", 10, kindIndependent, func() ([]message.Message, error) { return rules.CheckDrillBoardClearance(s.data) }},
		job{"Check silkscreen-to-stopmask clearances...", 10, kindIndependent, func() ([]message.Message, error) { return rules.CheckSilkscreenStopmaskClearance(s.data) }},
		job{"Check keepout zones...", 15, kindIndependent, func() ([]message.Message, error) { return rules.CheckKeepoutZones(s.data) }},
		job{"Check pad connections...", 5, kindIndependent, func() ([]message.Message, error) { return rules.CheckInvalidPadConnection(s.data) }},
		job{"Check device clearances...", 10, kindIndependent, func() ([]message.Message, error) { return rules.CheckDeviceClearances(s.data) }},
		job{"Check board outline...", 10, kindIndependent, func() ([]message.Message, error) { return rules.CheckBoardOutline(s.data) }},

		job{"Check copper-to-hole clearances...", 10, kindStage2, func() ([]message.Message, error) { return rules.CheckCopperHoleClearance(s.data, s.calc) }},
	)
	if !s.data.Quick {
		jobs = append(jobs, job{"Check minimum annular rings...", 10, kindStage2, func() ([]message.Message, error) { return rules.CheckMinimumAnnularRing(s.data, s.calc) }})
	}

	jobs = append(jobs,
		job{"Check minimum copper width...", 2, kindSequential, func() ([]message.Message, error) { return rules.CheckMinimumCopperWidth(s.data) }},
		job{"Check vias...", 2, kindSequential, func() ([]message.Message, error) { return rules.CheckVias(s.data) }},
		job{"Check allowed slots...", 2, kindSequential, func() ([]message.Message, error) { return rules.CheckAllowedSlots(s.data) }},
		job{"Check used layers...", 2, kindSequential, func() ([]message.Message, error) { return rules.CheckUsedLayers(s.data) }},
		job{"Check unplaced components and stale objects...", 2, kindSequential, func() ([]message.Message, error) { return rules.CheckUnplacedAndStale(s.data) }},
		job{"Check minimum silkscreen width and text height...", 2, kindSequential, func() ([]message.Message, error) { return rules.CheckMinimumSilkscreen(s.data) }},
		job{"Check minimum drill and slot sizes...", 2, kindSequential, func() ([]message.Message, error) { return rules.CheckMinimumDrillAndSlot(s.data) }},
	)
	return jobs
}

func (s *Scheduler) reportStatus(status string) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.sink.OnStatus(status)
}

func (s *Scheduler) addWeight(w int) {
	done := atomic.AddInt64(&s.doneWeight, int64(w))
	total := atomic.LoadInt64(&s.totalWeight)
	if total <= 0 {
		return
	}
	pct := 20 + int(80*done/total)
	if pct > 100 {
		pct = 100
	}
	s.sink.OnProgress(pct)
}

func (s *Scheduler) record(name string, msgs []message.Message, err error) {
	s.resultMu.Lock()
	defer s.resultMu.Unlock()
	if err != nil {
		s.errs = append(s.errs, fmt.Sprintf("%s: %v", name, err))
		return
	}
	s.messages = append(s.messages, msgs...)
}

func (s *Scheduler) runJob(j job) {
	if s.abort.Load() {
		return
	}
	s.reportStatus(j.name)
	msgs, err := j.run()
	s.record(j.name, msgs, err)
	s.addWeight(j.weight)
}

// Run executes every job to completion (or until cancellation drains the
// remaining queue) and returns the collected Result.
func (s *Scheduler) Run() Result {
	jobs := s.buildJobs()

	var total int64
	var stage1, stage2, independent, sequential []job
	for _, j := range jobs {
		total += int64(j.weight)
		switch j.kind {
		case kindStage1:
			stage1 = append(stage1, j)
		case kindStage2:
			stage2 = append(stage2, j)
		case kindIndependent:
			independent = append(independent, j)
		case kindSequential:
			sequential = append(sequential, j)
		}
	}
	atomic.StoreInt64(&s.totalWeight, total)

	var independentGroup errgroup.Group
	for _, j := range independent {
		j := j
		independentGroup.Go(func() error { s.runJob(j); return nil })
	}

	var stage1Group errgroup.Group
	for _, j := range stage1 {
		j := j
		stage1Group.Go(func() error { s.runJob(j); return nil })
	}
	stage1Group.Wait()

	var stage2Group errgroup.Group
	for _, j := range stage2 {
		j := j
		stage2Group.Go(func() error { s.runJob(j); return nil })
	}

	for _, j := range sequential {
		s.runJob(j)
	}

	stage2Group.Wait()
	independentGroup.Wait()

	s.resultMu.Lock()
	defer s.resultMu.Unlock()
	return Result{Messages: s.messages, Errors: s.errs}
}
