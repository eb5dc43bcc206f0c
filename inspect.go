/*
inspect.go, part of betafab



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
	"image/color"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rmera/betafab/molmodel"
	"github.com/rmera/betafab/peptide"
	"github.com/rmera/betafab/ssdb"
)

func checkCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "check INPUT.pdb",
		Short: "Check that a PDB file holds a well-formed peptide chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.env(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p, err := e.load(args[0])
			if err != nil {
				return err
			}
			m, err := p.Model()
			if err != nil {
				return err
			}
			if err := peptide.CheckPeptide(m); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "resid\tname\tclass\t")
			for _, r := range m.Residues() {
				fmt.Fprintf(w, "%d\t%s\t%s\t\n", r, m.ResidueName(r), peptide.Classify(m, r))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "N-capped: %t, C-capped: %t\n", peptide.IsNCapped(m), peptide.IsCCapped(m))
			return nil
		},
	}
}

// residueTorsions is a row of the torsions table.
type residueTorsions struct {
	resid   int
	resname string
	class   peptide.Class
	angles  map[string]float64
	ss      string
}

func measure(m *molmodel.Structure, db *ssdb.DB, tol float64) []residueTorsions {
	var ret []residueTorsions
	for _, r := range m.Residues() {
		row := residueTorsions{resid: r, resname: m.ResidueName(r), class: peptide.Classify(m, r), angles: make(map[string]float64)}
		var set []float64
		complete := true
		for _, t := range peptide.Torsions(m, r) {
			if t.Skipped {
				complete = false
				continue
			}
			row.angles[t.Name] = t.Achieved
			set = append(set, t.Achieved)
		}
		if complete && len(set) > 0 {
			row.ss, _ = db.Find(set, tol)
		}
		ret = append(ret, row)
	}
	return ret
}

func writeMeasured(out io.Writer, rows []residueTorsions) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "resid\tname\tclass\tphi\ttheta\tpsi\tsecondary structure\t")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t", row.resid, row.resname, row.class)
		for _, n := range []string{"phi", "theta", "psi"} {
			if v, ok := row.angles[n]; ok {
				fmt.Fprintf(w, "%.2f\t", v)
			} else {
				fmt.Fprint(w, "-\t")
			}
		}
		fmt.Fprintf(w, "%s\t\n", row.ss)
	}
	return w.Flush()
}

// torsionPlot draws psi against phi, alpha residues as circles and beta
// residues as triangles.
func torsionPlot(rows []residueTorsions) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Backbone torsions"
	p.X.Label.Text = "phi (degrees)"
	p.Y.Label.Text = "psi (degrees)"
	p.X.Min, p.X.Max = -180, 180
	p.Y.Min, p.Y.Max = -180, 180
	p.Add(plotter.NewGrid())
	for _, c := range []struct {
		class peptide.Class
		shape draw.GlyphDrawer
		color color.Color
	}{
		{peptide.AlphaResidue, draw.CircleGlyph{}, color.RGBA{R: 50, G: 100, B: 200, A: 255}},
		{peptide.BetaResidue, draw.TriangleGlyph{}, color.RGBA{R: 200, G: 60, B: 50, A: 255}},
	} {
		var pts plotter.XYs
		for _, row := range rows {
			phi, ok1 := row.angles["phi"]
			psi, ok2 := row.angles["psi"]
			if row.class == c.class && ok1 && ok2 {
				pts = append(pts, plotter.XY{X: phi, Y: psi})
			}
		}
		if len(pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Shape = c.shape
		sc.GlyphStyle.Color = c.color
		sc.GlyphStyle.Radius = vg.Points(4)
		p.Add(sc)
		p.Legend.Add(c.class.String(), sc)
	}
	p.Legend.Top = true
	return p, nil
}

func torsionsCmd(s *settings) *cobra.Command {
	var plotfile string
	tol := ssdb.DefaultTolerance
	c := &cobra.Command{
		Use:   "torsions INPUT.pdb",
		Short: "Measure the backbone torsions of a peptide",
		Long: `
Print phi, theta (beta residues only) and psi for every residue, with the
secondary structure of the database that matches them, if any. Optionally,
plot psi against phi.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.env(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			p, err := e.load(args[0])
			if err != nil {
				return err
			}
			m, err := p.Model()
			if err != nil {
				return err
			}
			rows := measure(m, e.db, tol)
			if err := writeMeasured(cmd.OutOrStdout(), rows); err != nil {
				return err
			}
			if plotfile == "" {
				return nil
			}
			pl, err := torsionPlot(rows)
			if err != nil {
				return err
			}
			return pl.Save(6*vg.Inch, 6*vg.Inch, plotfile)
		},
	}
	c.Flags().StringVar(&plotfile, "plot", "", "Image file (png, svg, pdf) for a plot of psi against phi")
	c.Flags().Float64Var(&tol, "tol", tol, "Tolerance, in degrees, to match torsions with database entries")
	return c
}

