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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/spezifisch/histmap/pkg/atlas"
	"github.com/spezifisch/histmap/pkg/feed"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return &Server{
		Renderer: &atlas.Renderer{
			Options: atlas.Options{
				Airports: feed.Source{Name: "airports", Location: "../../pkg/feed/testdata/airports.geojson"},
				States:   feed.Source{Name: "us-states", Location: "../../pkg/feed/testdata/missing-states.geojson"},
			},
			Feeds:  feed.NewFetcher(time.Second),
			Width:  1024,
			Height: 768,
		},
		Addr: "localhost:0",
	}
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func countKind(fc *geojson.FeatureCollection, kind string) int {
	n := 0
	for _, f := range fc.Features {
		if f.Properties.MustString("kind", "") == kind {
			n++
		}
	}
	return n
}

func TestHealth(t *testing.T) {
	w := get(t, testServer(t), "/health")
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("unexpected health response %d %q", w.Code, w.Body.String())
	}
}

func TestHandleMaps(t *testing.T) {
	w := get(t, testServer(t), "/maps")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var maps []mapInfo
	if err := json.NewDecoder(w.Body).Decode(&maps); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(maps) != len(atlas.MapIDs) {
		t.Fatalf("expected %d maps, got %d", len(atlas.MapIDs), len(maps))
	}
	last := maps[len(maps)-1]
	if last.ID != atlas.Global || !strings.Contains(last.Basemap, "dark_all") {
		t.Errorf("expected global map on dark tiles, got %+v", last)
	}
	if maps[0].MaxZoom != 16 || maps[0].MinZoom != 2 {
		t.Errorf("unexpected zoom range for %s: %d-%d", maps[0].ID, maps[0].MinZoom, maps[0].MaxZoom)
	}
}

func TestHandleOverlayGrid(t *testing.T) {
	w := get(t, testServer(t), "/maps/west/overlay?zoom=9&bbox=-110.1,40,-110,40.1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("unexpected content type %q", ct)
	}

	fc, err := geojson.UnmarshalFeatureCollection(w.Body.Bytes())
	if err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got := countKind(fc, "rectangle"); got != 169 {
		t.Errorf("expected 169 townships, got %d", got)
	}
	if got := countKind(fc, "polyline"); got != 22 {
		t.Errorf("expected 22 reference lines, got %d", got)
	}
}

func TestHandleOverlayGridOff(t *testing.T) {
	w := get(t, testServer(t), "/maps/west/overlay?zoom=9&bbox=-110.1,40,-110,40.1&grid=off")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	fc, err := geojson.UnmarshalFeatureCollection(w.Body.Bytes())
	if err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got := countKind(fc, "rectangle") + countKind(fc, "polyline"); got != 0 {
		t.Errorf("expected no grid primitives, got %d", got)
	}
}

func TestHandleOverlayColoniesFallback(t *testing.T) {
	w := get(t, testServer(t), "/maps/colonies/overlay")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if h := w.Header().Get("X-Overlay-Error"); h != "" {
		t.Errorf("unexpected overlay error %q", h)
	}

	fc, err := geojson.UnmarshalFeatureCollection(w.Body.Bytes())
	if err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got := countKind(fc, "polygon"); got != len(atlas.ColonyNames) {
		t.Errorf("expected %d simplified colonies, got %d", len(atlas.ColonyNames), got)
	}
	if got := countKind(fc, "polyline"); got != 13 {
		t.Errorf("expected 13 latitude lines, got %d", got)
	}
}

func TestHandleOverlayAirportsKML(t *testing.T) {
	w := get(t, testServer(t), "/maps/global/overlay?format=kml")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "<kml") {
		t.Fatal("expected a KML document")
	}
	if !strings.Contains(body, "Global Interconnectedness") {
		t.Error("expected the map title as document name")
	}
	if n := strings.Count(body, "<Placemark>"); n < 4 {
		t.Errorf("expected at least the airport placemarks, got %d", n)
	}
}

func TestHandleOverlayFeedFailure(t *testing.T) {
	w := get(t, testServer(t), "/maps/modern/overlay")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite a missing feed, got %d", w.Code)
	}
	if w.Header().Get("X-Overlay-Error") == "" {
		t.Error("expected the overlay error header")
	}
}

func TestHandleOverlayBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"unknown map", "/maps/atlantis/overlay", http.StatusNotFound},
		{"bad zoom", "/maps/west/overlay?zoom=high", http.StatusBadRequest},
		{"bad bbox", "/maps/west/overlay?zoom=9&bbox=1,2,3", http.StatusBadRequest},
		{"inverted bbox", "/maps/west/overlay?zoom=9&bbox=-100,40,-110,41", http.StatusBadRequest},
		{"bbox without zoom", "/maps/west/overlay?bbox=-110.1,40,-110,40.1", http.StatusBadRequest},
		{"bad format", "/maps/west/overlay?format=svg", http.StatusBadRequest},
		{"bad grid", "/maps/west/overlay?grid=maybe", http.StatusBadRequest},
	}
	srv := testServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, srv, tt.target)
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}
