/*
ssdbcmd.go, part of betafab



LICENSE

Copyright (c) 2024 Raul Mera <rmeraa{at}academicosDOTutaDOTcl>


This program, including its documentation,
is free software; you can redistribute it and/or modify
it under the terms of the GNU General Public License version 2.0 as
published by the Free Software Foundation.

This program and its documentation is distributed in the hope that
it will be useful, but WITHOUT ANY WARRANTY; without even the
implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR
PURPOSE.  See the GNU General Public License for more details.

You should have received a copy of the GNU General
Public License along with this program.  If not, see
<http://www.gnu.org/licenses/>.

*/

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rmera/betafab/ssdb"
)

func ssdbCmd(s *settings) *cobra.Command {
	c := &cobra.Command{
		Use:   "ssdb",
		Short: "Inspect and edit the secondary structure database",
		Long: `
The secondary structure database holds named sets of backbone torsions:
(phi, psi) for alpha amino acids and (phi, theta, psi) for beta amino acids.
Changes are written to the file given with --ssdb.`,
	}
	c.AddCommand(ssdbListCmd(s), ssdbShowCmd(s), ssdbFindCmd(s), ssdbAddCmd(s), ssdbDelCmd(s), ssdbResetCmd(s))
	return c
}

func ssdbListCmd(s *settings) *cobra.Command {
	var alpha, beta bool
	c := &cobra.Command{
		Use:   "list",
		Short: "List the entries of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.env(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !alpha && !beta {
				alpha, beta = true, true
			}
			return e.db.WriteTable(cmd.OutOrStdout(), alpha, beta)
		},
	}
	c.Flags().BoolVar(&alpha, "alpha", false, "List only the alpha-type entries")
	c.Flags().BoolVar(&beta, "beta", false, "List only the beta-type entries")
	return c
}

func ssdbShowCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print the torsions of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.env(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ent, err := e.db.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ent)
			return nil
		},
	}
}

// parseAngles reads 2 or 3 torsions. A theta of "None" is dropped.
func parseAngles(args []string) ([]float64, error) {
	var ret []float64
	for i, a := range args {
		if i == 1 && len(args) == 3 && a == "None" {
			continue
		}
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid torsion %q: %w", a, err)
		}
		ret = append(ret, f)
	}
	return ret, nil
}

func ssdbFindCmd(s *settings) *cobra.Command {
	tol := ssdb.DefaultTolerance
	c := &cobra.Command{
		Use:   "find PHI [THETA] PSI",
		Short: "Find the entry that matches a set of torsions",
		Example: `  betafab ssdb find --tol 1 -- -57.3 -47.2`,
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.env(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			angles, err := parseAngles(args)
			if err != nil {
				return err
			}
			name, ok := e.db.Find(angles, tol)
			if !ok {
				return fmt.Errorf("no entry within %g degrees of %v", tol, angles)
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
	c.Flags().Float64Var(&tol, "tol", tol, "Largest difference allowed for each torsion, in degrees")
	return c
}

func ssdbAddCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME PHI [THETA] PSI",
		Short: "Add an entry, or replace an existing one",
		Long: `
Add an entry. Put -- before the arguments, so negative torsions are not
taken for flags.`,
		Example: `  betafab ssdb add -- Alpha-helix -57 -47
  betafab ssdb add -- H14M -140.3 66.5 -136.8`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.env(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			angles, err := parseAngles(args[1:])
			if err != nil {
				return err
			}
			ent, err := ssdb.FromAngles(args[0], angles)
			if err != nil {
				return err
			}
			if err := e.db.Add(ent); err != nil {
				return err
			}
			e.log.Printf("added %s", ent)
			return nil
		},
	}
}

func ssdbDelCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "del NAME...",
		Short: "Remove entries from the database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.env(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			for _, n := range args {
				if err := e.db.Remove(n); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func ssdbResetCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in entries, keeping the ones added by the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.env(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return e.db.Reset()
		},
	}
}
