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

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spezifisch/histmap/pkg/geo"
	"github.com/spezifisch/histmap/pkg/layers"
	"github.com/spezifisch/histmap/pkg/surface"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		p    geo.GeoPoint
		want Region
	}{
		{"London", geo.Pt(51.5, -0.1), Europe},
		{"New York", geo.Pt(40.7, -74.0), NorthAmerica},
		{"Sydney", geo.Pt(-33.9, 151.2), Oceania},
		{"Heathrow", geo.Pt(51.47, -0.45), Europe},
		{"JFK", geo.Pt(40.64, -73.78), NorthAmerica},
		{"Kingsford Smith", geo.Pt(-33.94, 151.18), Oceania},
		{"Sao Paulo", geo.Pt(-23.43, -46.47), SouthAmerica},
		{"Cairo", geo.Pt(30.12, 31.41), Africa},
		{"Dubai", geo.Pt(25.25, 55.36), Asia},
		{"Honolulu", geo.Pt(21.32, -157.92), NorthAmerica},
		{"Aleutians west of -170", geo.Pt(52, -175), Asia},
		{"latitude 15 belongs nowhere in the Americas", geo.Pt(15, -60), Other},
		{"Antarctica", geo.Pt(-80, 0), Other},
		{"mid Atlantic", geo.Pt(0, -20), Other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.p))
		})
	}
}

func TestClassify_Total(t *testing.T) {
	for lat := -90.0; lat <= 90; lat += 2.5 {
		for lng := -180.0; lng <= 180; lng += 2.5 {
			r := Classify(geo.Pt(lat, lng))
			assert.Contains(t, regionNames, r)
		}
	}
}

func TestRegion_Color(t *testing.T) {
	assert.Equal(t, "#e74c3c", Europe.Color())
	assert.Equal(t, "#7f8c8d", Other.Color())
	assert.Equal(t, "Other", Region(99).String())
}

func TestParseSizeClass(t *testing.T) {
	tests := []struct {
		typ  string
		want SizeClass
	}{
		{"major_airport", Major},
		{"mid_airport", Mid},
		{"small_airport", Small},
		{"", Small},
		{"heliport", Small},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSizeClass(tt.typ), tt.typ)
	}
}

func TestAirport_Marker(t *testing.T) {
	major := Airport{Code: "LHR", Name: "Heathrow", Location: geo.Pt(51.47, -0.45), Size: Major}.Marker()
	assert.Equal(t, 4.0, major.Radius)
	assert.Equal(t, "#f39c12", major.Style.FillColor)
	assert.Equal(t, "Heathrow (LHR)\nEurope", major.Tooltip.Text)

	small := Airport{Code: "XYZ", Name: "Strip", Size: Small}.Marker()
	assert.Equal(t, 1.5, small.Radius)
	assert.Empty(t, small.Tooltip.Text)
}

func TestAirportsFromFeatures(t *testing.T) {
	fc := geojson.NewFeatureCollection()

	ok := geojson.NewFeature(orb.Point{-0.45, 51.47})
	ok.Properties["iata_code"] = "LHR"
	ok.Properties["name"] = "Heathrow"
	ok.Properties["type"] = "major_airport"
	fc.Append(ok)

	noType := geojson.NewFeature(orb.Point{2.55, 49.01})
	noType.Properties["iata_code"] = "CDG"
	fc.Append(noType)

	noCode := geojson.NewFeature(orb.Point{1, 1})
	noCode.Properties["name"] = "nameless"
	fc.Append(noCode)

	line := geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}})
	line.Properties["iata_code"] = "BAD"
	fc.Append(line)

	offWorld := geojson.NewFeature(orb.Point{250, 120})
	offWorld.Properties["iata_code"] = "ZZZ"
	offWorld.Properties["type"] = "major_airport"
	fc.Append(offWorld)

	noLat := geojson.NewFeature(orb.Point{10, math.NaN()})
	noLat.Properties["iata_code"] = "NAN"
	fc.Append(noLat)

	got := AirportsFromFeatures(fc)
	require.Len(t, got, 2)
	assert.Equal(t, Airport{Code: "LHR", Name: "Heathrow", Location: geo.Pt(51.47, -0.45), Size: Major}, got[0])
	assert.Equal(t, Small, got[1].Size)

	assert.Nil(t, AirportsFromFeatures(nil))
}

func TestControlPoint(t *testing.T) {
	ctrl := ControlPoint(geo.Pt(0, 0), geo.Pt(0, 10))
	assert.InDelta(t, 1, ctrl.Lat, 1e-9)
	assert.InDelta(t, 5, ctrl.Lng, 1e-9)

	pairs := [][2]geo.GeoPoint{
		{geo.Pt(51.47, -0.45), geo.Pt(40.64, -73.78)},
		{geo.Pt(-33.94, 151.18), geo.Pt(33.64, -84.43)},
		{geo.Pt(10, 10), geo.Pt(12, 11)},
		{geo.Pt(-5, 170), geo.Pt(60, -170)},
	}
	for _, p := range pairs {
		src, dst := p[0], p[1]
		ctrl := ControlPoint(src, dst)
		mid := geo.Pt((src.Lat+dst.Lat)/2, (src.Lng+dst.Lng)/2)
		d := geo.PlanarDistance(src, dst)

		assert.InDelta(t, math.Min(d/10, MaxCurvature), geo.PlanarDistance(mid, ctrl), 1e-9)

		// perpendicular to the connection
		dot := (ctrl.Lng-mid.Lng)*(dst.Lng-src.Lng) + (ctrl.Lat-mid.Lat)*(dst.Lat-src.Lat)
		assert.InDelta(t, 0, dot, 1e-6)
	}
}

func fixtureAirports() []Airport {
	return []Airport{
		{Code: "BOS", Name: "Boston", Location: geo.Pt(42.36, -71.01), Size: Mid},
		{Code: "ATL", Name: "Atlanta", Location: geo.Pt(33.64, -84.43), Size: Major},
		{Code: "MIA", Name: "Miami", Location: geo.Pt(25.79, -80.29), Size: Mid},
		{Code: "DEN", Name: "Denver", Location: geo.Pt(39.86, -104.67), Size: Major},
		{Code: "SEA", Name: "Seattle", Location: geo.Pt(47.45, -122.31), Size: Mid},
		{Code: "LHR", Name: "Heathrow", Location: geo.Pt(51.47, -0.45), Size: Major},
		{Code: "SYD", Name: "Sydney", Location: geo.Pt(-33.94, 151.18), Size: Major},
		{Code: "CDG", Name: "Charles de Gaulle", Location: geo.Pt(49.01, 2.55), Size: Major},
		{Code: "ORD", Name: "O'Hare", Location: geo.Pt(41.98, -87.9), Size: Major},
	}
}

func TestNetwork_Connections(t *testing.T) {
	conns, hubs := NewNetwork().Connections(fixtureAirports())
	assert.Equal(t, 5, hubs, "ATL ORD LHR CDG SYD")

	perHub := map[string][]string{}
	for _, c := range conns {
		perHub[c.Source.Code] = append(perHub[c.Source.Code], c.Kind.String()+":"+c.Target.Code)
	}

	tests := []struct {
		hub  string
		want []string
	}{
		// first three nearby airports in feed order; ORD is near but comes too late
		{"ATL", []string{"nearby:BOS", "nearby:MIA", "nearby:DEN", "intercontinental:LHR", "intercontinental:CDG"}},
		{"ORD", []string{"nearby:BOS", "nearby:ATL", "nearby:MIA", "intercontinental:LHR", "intercontinental:CDG"}},
		{"LHR", []string{"nearby:CDG", "intercontinental:ATL", "intercontinental:ORD"}},
		{"CDG", []string{"nearby:LHR", "intercontinental:ATL", "intercontinental:ORD"}},
		{"SYD", []string{"intercontinental:ATL", "intercontinental:ORD"}},
	}
	for _, tt := range tests {
		t.Run(tt.hub, func(t *testing.T) {
			assert.Equal(t, tt.want, perHub[tt.hub])
		})
	}

	for _, c := range conns {
		assert.NotEqual(t, c.Source.Code, c.Target.Code)
		switch c.Kind {
		case Nearby:
			assert.Equal(t, c.Source.Region(), c.Target.Region())
			assert.Less(t, geo.PlanarDistance(c.Source.Location, c.Target.Location), 25.0)
			assert.Equal(t, c.Source.Region().Color(), c.Color)
			assert.Equal(t, 0.7, c.Opacity)
		case Intercontinental:
			assert.NotEqual(t, c.Source.Region(), c.Target.Region())
			assert.Equal(t, "#ffffff", c.Color)
			assert.Equal(t, 0.4, c.Opacity)
		}
	}
}

func TestNetwork_ConnectionsLastRecordWins(t *testing.T) {
	atlanta := geo.Pt(33.64, -84.43)
	airports := []Airport{
		{Code: "ATL", Name: "Stale Atlanta", Location: geo.Pt(-1.32, 36.93), Size: Major},
		{Code: "BOS", Name: "Boston", Location: geo.Pt(42.36, -71.01), Size: Mid},
		{Code: "MIA", Name: "Miami", Location: geo.Pt(25.79, -80.29), Size: Mid},
		{Code: "LHR", Name: "Heathrow", Location: geo.Pt(51.47, -0.45), Size: Major},
		{Code: "ATL", Name: "Atlanta", Location: atlanta, Size: Major},
	}

	conns, hubs := NewNetwork().Connections(airports)
	assert.Equal(t, 2, hubs)

	var fromATL []string
	toATL := 0
	for _, c := range conns {
		if c.Source.Code == "ATL" {
			assert.Equal(t, atlanta, c.Source.Location)
			assert.Equal(t, "Atlanta", c.Source.Name)
			fromATL = append(fromATL, c.Kind.String()+":"+c.Target.Code)
		}
		if c.Target.Code == "ATL" {
			assert.Equal(t, atlanta, c.Target.Location)
			toATL++
		}
	}
	assert.Equal(t, []string{"nearby:BOS", "nearby:MIA", "intercontinental:LHR"}, fromATL)
	assert.Equal(t, 1, toATL, "LHR reaches ATL as a North American hub")
}

func TestNetwork_Generate(t *testing.T) {
	s := surface.NewCanvas(1024, 768)
	var c layers.Collection

	res, err := NewNetwork().Generate(s, &c, fixtureAirports())
	require.NoError(t, err)
	assert.Equal(t, 9, res.Airports)
	assert.Equal(t, 8, res.Count(Nearby))
	assert.Equal(t, 10, res.Count(Intercontinental))

	assert.Equal(t, 9, s.Count(surface.KindMarker))
	assert.Equal(t, 2*18, s.Count(surface.KindCurve))
	assert.Equal(t, 1, s.Count(surface.KindControl))
	assert.Equal(t, s.Len(), c.Len())

	var tooltips []string
	for _, l := range s.Layers() {
		if cv, ok := l.Primitive.(surface.Curve); ok && cv.Tooltip.Text != "" {
			tooltips = append(tooltips, cv.Tooltip.Text)
		}
	}
	require.Len(t, tooltips, 18, "only base curves carry a tooltip")
	assert.Equal(t, "Atlanta (ATL) to Boston (BOS)", tooltips[0])

	// a second run replaces the first
	_, err = NewNetwork().Generate(s, &c, fixtureAirports())
	require.NoError(t, err)
	assert.Equal(t, 9+36+1, s.Len())
	assert.Equal(t, s.Len(), c.Len())
}

func TestNetwork_MissingHubs(t *testing.T) {
	airports := []Airport{
		{Code: "AAA", Name: "A", Location: geo.Pt(40, -100)},
		{Code: "BBB", Name: "B", Location: geo.Pt(41, -101)},
	}
	s := surface.NewCanvas(0, 0)
	var c layers.Collection
	res, err := NewNetwork().Generate(s, &c, airports)
	require.NoError(t, err)
	assert.Zero(t, res.Hubs)
	assert.Empty(t, res.Connections)
	assert.Equal(t, 3, c.Len(), "two markers and the legend")
}

func TestConnection_Curves(t *testing.T) {
	n := NewNetwork()
	airports := fixtureAirports()
	conn := n.connection(airports[1], airports[5], Intercontinental, IntercontinentalColor, 0.4)

	base, hl := conn.Curves()
	assert.Equal(t, conn.Control, base.Control)
	assert.Equal(t, base.Control, hl.Control)
	assert.Equal(t, 1.5, base.Style.Weight)
	assert.InDelta(t, 0.28, base.Style.Opacity, 1e-9)
	assert.Equal(t, 0.8, hl.Style.Weight)
	assert.InDelta(t, 0.52, hl.Style.Opacity, 1e-9)
	assert.Empty(t, hl.Tooltip.Text)
}

type brittleSurface struct {
	*surface.Canvas
	budget int
}

func (b *brittleSurface) Add(p surface.Primitive) surface.Handle {
	if b.budget == 0 {
		panic("surface gone")
	}
	b.budget--
	return b.Canvas.Add(p)
}

func TestNetwork_GenerateRecovers(t *testing.T) {
	s := &brittleSurface{Canvas: surface.NewCanvas(0, 0), budget: 4}
	var c layers.Collection
	res, err := NewNetwork().Generate(s, &c, fixtureAirports())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDrawFailed))
	assert.Equal(t, 4, res.Airports)
}
