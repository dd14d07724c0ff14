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

// Package tiles knows the raster basemaps the maps use and how to
// authenticate against Stadia Maps.
package tiles

import (
	"net/url"
	"strings"
)

// Basemap is a tile URL template with its attribution.
type Basemap struct {
	URL         string
	Attribution string
	MaxZoom     int
}

const (
	osmCarto   = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`
	stamenBase = `Map tiles by <a href="http://stamen.com">Stamen Design</a>, under <a href="http://creativecommons.org/licenses/by/3.0">CC BY 3.0</a>. Data by <a href="http://openstreetmap.org">OpenStreetMap</a>, under `
	stadiaHost = ` | Tiles hosted by <a href="https://stadiamaps.com/">Stadia Maps</a>`
)

// Known basemaps.
var (
	CartoLight = Basemap{
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		Attribution: osmCarto,
		MaxZoom:     19,
	}
	CartoDark = Basemap{
		URL:         "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
		Attribution: osmCarto,
		MaxZoom:     19,
	}
	StamenWatercolor = Basemap{
		URL:         "https://tiles.stadiamaps.com/tiles/stamen_watercolor/{z}/{x}/{y}.jpg",
		Attribution: stamenBase + `<a href="http://www.openstreetmap.org/copyright">CC BY SA</a>` + stadiaHost,
		MaxZoom:     16,
	}
	StamenTerrain = Basemap{
		URL:         "https://tiles.stadiamaps.com/tiles/stamen_terrain/{z}/{x}/{y}{r}.png",
		Attribution: stamenBase + `<a href="http://www.openstreetmap.org/copyright">ODbL</a>` + stadiaHost,
		MaxZoom:     18,
	}
	EsriWorldImagery = Basemap{
		URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: "Tiles &copy; Esri &mdash; Source: Esri, i-cubed, USDA, USGS, AEX, GeoEye, Getmapping, Aerogrid, IGN, IGP, UPR-EGP, and the GIS User Community",
		MaxZoom:     19,
	}
	EsriWorldTopo = Basemap{
		URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Topo_Map/MapServer/tile/{z}/{y}/{x}",
		Attribution: "Tiles &copy; Esri &mdash; Esri, DeLorme, NAVTEQ, TomTom, Intermap, iPC, USGS, FAO, NPS, NRCAN, GeoBase, Kadaster NL, Ordnance Survey, Esri Japan, METI, Esri China (Hong Kong), and the GIS User Community",
		MaxZoom:     19,
	}
)

// IsStadia reports whether the template points at a Stadia Maps host.
func IsStadia(template string) bool {
	u, err := url.Parse(template)
	if err != nil {
		return strings.Contains(template, "stadiamaps.com")
	}
	host := u.Hostname()
	return host == "stadiamaps.com" || strings.HasSuffix(host, ".stadiamaps.com")
}

// WithAPIKey appends the Stadia Maps api_key parameter to template. Other
// hosts and empty keys leave the template unchanged.
func WithAPIKey(template, key string) string {
	if key == "" || !IsStadia(template) {
		return template
	}
	sep := "?"
	if strings.Contains(template, "?") {
		sep = "&"
	}
	return template + sep + "api_key=" + url.QueryEscape(key)
}

// WithAPIKey returns b with the key applied to its URL.
func (b Basemap) WithAPIKey(key string) Basemap {
	b.URL = WithAPIKey(b.URL, key)
	return b
}
