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
	"testing"

	"github.com/LibrePCB/LibrePCB-sub022/board"
)

type recordingSink struct {
	mu       sync.Mutex
	started  bool
	statuses []string
	progress []int
	result   *Result
}

func (s *recordingSink) OnStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
}

func (s *recordingSink) OnStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, status)
}

func (s *recordingSink) OnProgress(percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = append(s.progress, percent)
}

func (s *recordingSink) OnFinished(result Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := result
	s.result = &r
}

func TestOrchestratorRunsToCompletion(t *testing.T) {
	sink := &recordingSink{}
	o := NewOrchestrator(sink, nil)

	o.Start(func() (*board.Data, error) {
		return board.NewData(board.Settings{}, false), nil
	})

	result := o.WaitForFinished()
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if !sink.started {
		t.Fatal("expected OnStarted to have been called")
	}
	if sink.result == nil {
		t.Fatal("expected OnFinished to have been called")
	}
	if sink.progress[len(sink.progress)-1] != 100 {
		t.Fatalf("expected the final progress report to be 100, got %d", sink.progress[len(sink.progress)-1])
	}
}

func TestOrchestratorSnapshotFailurePropagatesAsError(t *testing.T) {
	sink := &recordingSink{}
	o := NewOrchestrator(sink, nil)

	o.Start(func() (*board.Data, error) {
		return nil, fmt.Errorf("boom")
	})

	result := o.WaitForFinished()
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", result.Errors)
	}
}

func TestOrchestratorCancelBeforeSnapshotIsANoOp(t *testing.T) {
	o := NewOrchestrator(nil, nil)
	done := make(chan struct{})
	o.Start(func() (*board.Data, error) {
		close(done)
		return board.NewData(board.Settings{}, false), nil
	})
	<-done
	o.Cancel()
	o.WaitForFinished()
}
