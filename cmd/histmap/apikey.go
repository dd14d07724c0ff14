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
	"strings"

	"github.com/spf13/cobra"

	"github.com/spezifisch/histmap/pkg/prefs"
)

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage the Stadia Maps API key used for Stamen tiles",
}

var apikeySetCmd = &cobra.Command{
	Use:   "set KEY",
	Short: "Save the API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := prefs.Open(prefsPath)
		if err != nil {
			return err
		}
		return store.SaveAPIKey(args[0])
	},
}

var apikeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved API key, masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := prefs.Open(prefsPath)
		if err != nil {
			return err
		}
		key := store.APIKey()
		if key == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "no API key saved in %s\n", store.Path())
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), mask(key))
		return nil
	},
}

func mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func init() {
	apikeyCmd.AddCommand(apikeySetCmd, apikeyShowCmd)
	rootCmd.AddCommand(apikeyCmd)
}
