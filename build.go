/*
build.go, part of betafab



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
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rmera/betafab/molmodel"
	"github.com/rmera/betafab/peptide"
	"github.com/rmera/betafab/sequence"
)

func writeTorsions(out io.Writer, tors []peptide.Torsion) error {
	if len(tors) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "resid\ttorsion\ttarget\tachieved\t")
	for _, t := range tors {
		if t.Skipped {
			fmt.Fprintf(w, "%d\t%s\t%.2f\tskipped (%s)\t\n", t.Resid, t.Name, t.Target, t.Reason)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t\n", t.Resid, t.Name, t.Target, t.Achieved)
	}
	return w.Flush()
}

func buildCmd(s *settings) *cobra.Command {
	var out, name, fold string
	c := &cobra.Command{
		Use:   "build SEQUENCE...",
		Short: "Build a peptide from its sequence",
		Long: `
Build a peptide and write it as a PDB file. The residues are separated by
commas, and can be split among several arguments.

  beta-2 amino acid:    (S)B2hV
  beta-3 amino acid:    (R)B3hL
  beta-2,3 amino acid:  (2S3R)B23h(2A3L)
  bare beta backbone:   BA
  alpha amino acid:     (S)AK, (D)AW
  caps:                 ACE, BUT (N terminus), NME (C terminus)
  cyclic beta:          (2S3S)ACHC, (2R3R)ACPC

Each residue can be followed by its torsions in brackets, [-140.3 66.5 -136.8],
or by a secondary structure of the database in braces, {H14M}.`,
		Example: `  betafab build -o valxval.pdb "ACE, (S)B3hV{H14M}, (S)AA{Alpha-helix}, (S)B3hV{H14M}, NME"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.env(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			res, err := sequence.Parse(strings.Join(args, ","), e.db)
			if err != nil {
				return err
			}
			p, tors, err := e.b.Build(name, res)
			if err != nil {
				return err
			}
			if fold != "" {
				spec, err := sequence.ParseFoldSpec(fold, e.db)
				if err != nil {
					return err
				}
				t, err := e.b.FoldAll(p, spec)
				tors = append(tors, t...)
				if err != nil {
					return err
				}
			}
			if s.verbose {
				if err := writeTorsions(cmd.OutOrStdout(), tors); err != nil {
					return err
				}
			}
			m, err := p.Model()
			if err != nil {
				return err
			}
			return m.WritePDB(out)
		},
	}
	c.Flags().StringVarP(&out, "output", "o", "peptide.pdb", "PDB file to write")
	c.Flags().StringVar(&name, "name", "peptide", "Name of the structure")
	c.Flags().StringVar(&fold, "fold", "", "Secondary structure to give every residue after building, as for the fold command")
	return c
}

// load reads a PDB file into the session of e and returns it as a peptide.
func (e *env) load(fname string) (*peptide.Peptide, error) {
	m, err := molmodel.ReadPDB(fname)
	if err != nil {
		return nil, err
	}
	m.Name = "input"
	e.sess.SetModel(m)
	return peptide.Open(e.sess, m.Name)
}

func foldCmd(s *settings) *cobra.Command {
	var out string
	c := &cobra.Command{
		Use:   "fold INPUT.pdb SECSTRUCT",
		Short: "Set the backbone torsions of an existing peptide",
		Long: `
Fold a peptide into a secondary structure. SECSTRUCT is either one entry
applied to every residue, or a bracketed list with one entry per residue.
An entry is a database name (in braces if it contains spaces) or a tuple of
torsions, (phi psi), (phi None psi) or (phi theta psi).`,
		Example: `  betafab fold valxval.pdb H14M
  betafab fold -o out.pdb tripeptide.pdb "[(-140.3 66.5 -136.8) (180 180 180) H14M]"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.env(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			spec, err := sequence.ParseFoldSpec(args[1], e.db)
			if err != nil {
				return err
			}
			p, err := e.load(args[0])
			if err != nil {
				return err
			}
			if err := p.Check(); err != nil {
				return err
			}
			tors, err := e.b.FoldAll(p, spec)
			if err != nil {
				return err
			}
			if err := writeTorsions(cmd.OutOrStdout(), tors); err != nil {
				return err
			}
			if out == "" {
				out = args[0]
			}
			m, err := p.Model()
			if err != nil {
				return err
			}
			return m.WritePDB(out)
		},
	}
	c.Flags().StringVarP(&out, "output", "o", "", "PDB file to write (default: overwrite the input)")
	return c
}
