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

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List the available maps",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRenderer()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tZOOM\tRANGE\tTITLE")
		for _, m := range r.Options.Catalog(nil) {
			lo, hi := m.ZoomLimits()
			fmt.Fprintf(w, "%s\t%d\t%d-%d\t%s\n", m.ID, m.Zoom, lo, hi, m.Title)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(mapsCmd)
}
