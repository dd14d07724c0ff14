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

package airnet

// Hub is a regional hub airport that originates connections.
type Hub struct {
	Code string
	Name string
}

// Hubs is the fixed hub list. Its order decides which intercontinental
// partners a hub gets.
var Hubs = []Hub{
	// North America
	{"ATL", "Atlanta"},
	{"ORD", "Chicago"},
	{"LAX", "Los Angeles"},
	{"JFK", "New York"},
	{"YYZ", "Toronto"},
	{"MEX", "Mexico City"},
	// South America
	{"GRU", "São Paulo"},
	{"BOG", "Bogotá"},
	{"SCL", "Santiago"},
	{"LIM", "Lima"},
	// Europe
	{"LHR", "London"},
	{"CDG", "Paris"},
	{"FRA", "Frankfurt"},
	{"IST", "Istanbul"},
	{"MAD", "Madrid"},
	// Africa
	{"JNB", "Johannesburg"},
	{"CAI", "Cairo"},
	{"LOS", "Lagos"},
	{"NBO", "Nairobi"},
	// Asia
	{"PEK", "Beijing"},
	{"HND", "Tokyo"},
	{"SIN", "Singapore"},
	{"DEL", "Delhi"},
	{"DXB", "Dubai"},
	// Oceania
	{"SYD", "Sydney"},
	{"MEL", "Melbourne"},
	{"AKL", "Auckland"},
}
