// This file is part of histmap (https://github.com/spezifisch/histmap).
// Copyright (C) 2022 spezifisch <spezifisch-7e6@below.fr> (https://github.com/spezifisch).
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, version 3 of the License.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE. See the GNU Affero General Public License for more
// details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

package feed

import "github.com/paulmach/orb/geojson"

// Property keys of the airport feed.
const (
	PropIATACode = "iata_code"
	PropName     = "name"
	PropType     = "type"
)

// Source names a feed and where it is loaded from: an http(s) URL or a
// local file path.
type Source struct {
	Name     string `toml:"name"`
	Location string `toml:"location"`
}

// Document is a decoded feed. Features is never nil for a document
// returned by Fetcher.Fetch.
type Document struct {
	Source   Source
	Features *geojson.FeatureCollection
}
