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

package board

import "github.com/LibrePCB/LibrePCB-sub022/geom"

// NetClass overrides a subset of Settings for the nets assigned to it. A nil
// *NetClass anywhere in the snapshot means "no net class", and the settings
// fallback is used as-is.
type NetClass struct {
	Name string

	MinCopperCopperClearance *geom.UnsignedLength
	MinCopperWidth           *geom.UnsignedLength
	MinViaDrillDiameter      *geom.UnsignedLength
}
