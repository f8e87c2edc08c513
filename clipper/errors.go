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

package clipper

// LogicError reports a broken internal invariant of the polygon kernel (a
// hole-splicing seam that could not be found, a tree walk that encountered
// an unexpected shape). Callers at the job-scheduler boundary catch this and
// turn it into a Result.errors entry rather than aborting the whole run.
type LogicError struct {
	Op      string
	Message string
}

func (e *LogicError) Error() string {
	return "clipper: logic error in " + e.Op + ": " + e.Message
}

func newLogicError(op, message string) error {
	return &LogicError{Op: op, Message: message}
}
