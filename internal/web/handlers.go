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

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/spezifisch/histmap/pkg/atlas"
	"github.com/spezifisch/histmap/pkg/geo"
	"github.com/spezifisch/histmap/pkg/surface"
)

type mapInfo struct {
	ID          atlas.MapID  `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Center      geo.GeoPoint `json:"center"`
	Zoom        int          `json:"zoom"`
	MinZoom     int          `json:"minZoom"`
	MaxZoom     int          `json:"maxZoom"`
	Basemap     string       `json:"basemap"`
	Attribution string       `json:"attribution"`
}

func (s *Server) handleMaps(w http.ResponseWriter, r *http.Request) {
	maps := s.Renderer.Options.Catalog(nil)
	out := make([]mapInfo, 0, len(maps))
	for _, m := range maps {
		lo, hi := m.ZoomLimits()
		bm := m.EffectiveBasemap()
		out = append(out, mapInfo{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Center:      m.Center,
			Zoom:        m.Zoom,
			MinZoom:     lo,
			MaxZoom:     hi,
			Basemap:     bm.URL,
			Attribution: bm.Attribution,
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleOverlay(w http.ResponseWriter, r *http.Request) {
	id, err := atlas.ParseMapID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	var view *atlas.View
	if zs := q.Get("zoom"); zs != "" {
		zoom, err := strconv.Atoi(zs)
		if err != nil {
			http.Error(w, "invalid 'zoom' parameter", http.StatusBadRequest)
			return
		}
		view = &atlas.View{Zoom: zoom}
	}
	if bs := q.Get("bbox"); bs != "" {
		b, err := geo.ParseBounds(bs)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if view == nil {
			http.Error(w, "'bbox' needs 'zoom'", http.StatusBadRequest)
			return
		}
		view.Bounds = &b
	}

	switch q.Get("grid") {
	case "", "on":
	case "off":
		if view == nil {
			view = &atlas.View{}
		}
		view.HideGrid = true
	default:
		http.Error(w, "invalid 'grid' parameter", http.StatusBadRequest)
		return
	}

	format := q.Get("format")
	if format == "" {
		format = "geojson"
	}
	if format != "geojson" && format != "kml" {
		http.Error(w, "invalid 'format' parameter", http.StatusBadRequest)
		return
	}

	snap, err := s.Renderer.Render(r.Context(), id, view)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, atlas.ErrUnknownMap) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	if snap.Err != nil {
		w.Header().Set("X-Overlay-Error", snap.Err.Error())
	}

	switch format {
	case "kml":
		w.Header().Set("Content-Type", "application/vnd.google-earth.kml+xml")
		err = surface.WriteKML(w, snap.Map.Title, snap.Layers)
	default:
		w.Header().Set("Content-Type", "application/geo+json")
		err = surface.WriteGeoJSON(w, snap.Layers)
	}
	if err != nil {
		log.WithError(err).WithField("map", id).Error("writing overlay failed")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
