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

import "github.com/LibrePCB/LibrePCB-sub022/drc/message"

// Result is what a completed (or partially completed, on cancellation) run
// hands back.
type Result struct {
	Messages []message.Message
	Errors   []string
}

// DrcSink receives the orchestrator's lifecycle callbacks. OnStatus and
// OnProgress may be called concurrently from any worker goroutine or from
// the orchestrator goroutine itself; implementations must be safe for
// that.
type DrcSink interface {
	OnStarted()
	OnStatus(status string)
	OnProgress(percent int)
	OnFinished(result Result)
}

// NopSink implements DrcSink with no-ops, useful for running the DRC
// headless or in tests that only care about the returned Result.
type NopSink struct{}

func (NopSink) OnStarted()            {}
func (NopSink) OnStatus(string)        {}
func (NopSink) OnProgress(int)         {}
func (NopSink) OnFinished(Result)      {}
