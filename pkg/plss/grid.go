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

// Package plss draws an approximation of the Public Land Survey System:
// principal meridians and baselines, and at higher zoom levels a grid of
// townships and sections over the visible part of the surveyed west.
//
// Townships are squares of a fixed size in degrees, which is close to six
// miles at these latitudes but not geodetically exact. Township and range
// numbers are counted from the south-west corner of the whole region, not
// from each meridian/baseline pair as the real survey does.
package plss

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/spezifisch/histmap/pkg/geo"
	"github.com/spezifisch/histmap/pkg/layers"
	"github.com/spezifisch/histmap/pkg/surface"
)

// Region is the surveyed area covered by the grid.
var Region = geo.Bounds{West: -125, East: -96, North: 49, South: 31}

const (
	// TownshipSize is six miles in degrees, roughly.
	TownshipSize = 0.087
	// SectionsPerSide is the number of sections along a township edge.
	SectionsPerSide = 6
)

// Township is one grid cell.
type Township struct {
	Anchor geo.GeoPoint // south-west corner
	Size   float64
	Row    int
	Col    int
}

// Label is the cosmetic township/range designation, e.g. "T12N R40E".
func (t Township) Label() string {
	return fmt.Sprintf("T%dN R%dE", t.Row, t.Col)
}

// Rectangle returns the drawable for t.
func (t Township) Rectangle() surface.Rectangle {
	return surface.Rectangle{
		SouthWest: t.Anchor,
		NorthEast: geo.Pt(t.Anchor.Lat+t.Size, t.Anchor.Lng+t.Size),
		Style: surface.Style{
			Color: "#FF0000", Weight: 1.2, Opacity: 0.6,
			FillColor: "#FF0000", FillOpacity: 0.05,
			ClassName: "plss-township",
		},
		Tooltip: surface.Tooltip{Text: "Township: " + t.Label(), Sticky: true, ClassName: "plss-tooltip"},
	}
}

// Sections subdivides t into at most limit sections, numbered row-major
// from the south-west corner.
func (t Township) Sections(limit int) []Section {
	size := t.Size / SectionsPerSide
	out := make([]Section, 0, SectionsPerSide*SectionsPerSide)
	for row := 0; row < SectionsPerSide; row++ {
		for col := 0; col < SectionsPerSide; col++ {
			if len(out) >= limit {
				return out
			}
			out = append(out, Section{
				Anchor: geo.Pt(t.Anchor.Lat+float64(row)*size, t.Anchor.Lng+float64(col)*size),
				Size:   size,
				Number: row*SectionsPerSide + col + 1,
			})
		}
	}
	return out
}

// Section is a one-mile subdivision of a township.
type Section struct {
	Anchor geo.GeoPoint
	Size   float64
	Number int
}

// Rectangle returns the drawable for s.
func (s Section) Rectangle() surface.Rectangle {
	return surface.Rectangle{
		SouthWest: s.Anchor,
		NorthEast: geo.Pt(s.Anchor.Lat+s.Size, s.Anchor.Lng+s.Size),
		Style: surface.Style{
			Color: "#FFA500", Weight: 0.8, Opacity: 0.7,
			FillColor: "#FFA500", FillOpacity: 0.05,
			ClassName: "plss-section",
		},
		Tooltip: surface.Tooltip{Text: fmt.Sprintf("Section %d", s.Number), ClassName: "section-tooltip"},
	}
}

// Generator computes the grid for a viewport.
type Generator struct {
	Region       geo.Bounds
	TownshipSize float64
	// Margin extends the viewport on every side before clipping.
	Margin float64
	// TownshipZoom is the lowest zoom level that shows townships.
	TownshipZoom int
	// SectionZoom is the lowest zoom level that shows sections.
	SectionZoom int
	// MaxTownships caps the townships drawn in one pass.
	MaxTownships int
	// MaxSectioned caps how many townships of a pass get sections.
	MaxSectioned int
	// MaxSections caps the sections drawn inside one township.
	MaxSections int
}

// NewGenerator returns a generator with the stock limits.
func NewGenerator() *Generator {
	return &Generator{
		Region:       Region,
		TownshipSize: TownshipSize,
		Margin:       0.5,
		TownshipZoom: 8,
		SectionZoom:  10,
		MaxTownships: 300,
		MaxSectioned: 100,
		MaxSections:  36,
	}
}

// Pass describes what one generation run drew.
type Pass struct {
	Zoom           int
	Window         geo.Bounds
	ReferenceLines int
	Townships      int
	Sections       int
	CapReached     bool
}

// Drawn is the total number of primitives of the pass.
func (p Pass) Drawn() int {
	return p.ReferenceLines + p.Townships + p.Sections
}

// PassError is returned when a pass aborted. Pass has what was drawn
// before the failure; those primitives stay on the surface.
type PassError struct {
	Pass Pass
	Err  error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("plss pass aborted after %d primitives: %v", e.Pass.Drawn(), e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}

// ErrDrawFailed wraps a panic raised by the surface while drawing.
var ErrDrawFailed = errors.New("draw failed")

// Generate draws the reference lines and, depending on the zoom level of
// s, the townships and sections of the visible window. Everything drawn is
// tracked in c.
func (g *Generator) Generate(s surface.Surface, c *layers.Collection) (pass Pass, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PassError{Pass: pass, Err: fmt.Errorf("%w: %v", ErrDrawFailed, r)}
		}
		if err != nil {
			log.WithError(err).Error("error rendering PLSS grid")
		}
	}()

	pass.Zoom = s.Zoom()

	for _, lines := range [][]ReferenceLine{PrincipalMeridians, PrincipalBaselines} {
		for _, l := range lines {
			c.Track(s, l.Polyline())
			pass.ReferenceLines++
		}
	}

	if pass.Zoom < g.TownshipZoom {
		return pass, nil
	}

	view := s.Bounds()
	if verr := view.Validate(); verr != nil {
		return pass, &PassError{Pass: pass, Err: fmt.Errorf("viewport: %w", verr)}
	}
	if g.TownshipSize <= 0 || math.IsNaN(g.TownshipSize) {
		return pass, &PassError{Pass: pass, Err: fmt.Errorf("township size %g", g.TownshipSize)}
	}

	pass.Window = view.Expand(g.Margin).Clip(g.Region)
	if pass.Window.Validate() != nil {
		// viewport is outside the surveyed region
		return pass, nil
	}

	size := g.TownshipSize
	w := pass.Window
	for lat := w.South; lat < w.North && pass.Townships < g.MaxTownships; lat += size {
		for lng := w.West; lng < w.East && pass.Townships < g.MaxTownships; lng += size {
			t := Township{
				Anchor: geo.Pt(lat, lng),
				Size:   size,
				Row:    int(math.Round((lat - g.Region.South) / size)),
				Col:    int(math.Round((lng - g.Region.West) / size)),
			}
			c.Track(s, t.Rectangle())
			pass.Townships++

			if pass.Zoom >= g.SectionZoom && pass.Townships < g.MaxSectioned {
				for _, sec := range t.Sections(g.MaxSections) {
					c.Track(s, sec.Rectangle())
					pass.Sections++
				}
			}
		}
	}

	if pass.Townships >= g.MaxTownships {
		pass.CapReached = true
		log.WithField("townships", pass.Townships).Info("maximum township display limit reached, zoom in for more detail")
	}
	log.WithFields(log.Fields{
		"zoom":      pass.Zoom,
		"townships": pass.Townships,
		"sections":  pass.Sections,
	}).Debug("plss pass done")
	return pass, nil
}
