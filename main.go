/*

betafab, an alpha/beta-peptide builder.

This program makes extensive use of the goChem Computational Chemistry library.
If you use this program, we kindly ask you support it by to citing the library as:

R. Mera-Adasme, G. Savasci and J. Pesonen, "goChem, a library for computational chemistry", http://www.gochem.org.


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
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rmera/betafab/fraglib"
	"github.com/rmera/betafab/molmodel"
	"github.com/rmera/betafab/peptide"
	"github.com/rmera/betafab/ssdb"
)

// settings shared by all the subcommands.
type settings struct {
	seed      int64
	verbose   bool
	strict    bool
	fragments string
	ssdb      string
	tries     int
}

// env is what a subcommand works with.
type env struct {
	sess *molmodel.Session
	b    *peptide.Builder
	db   *ssdb.DB
	log  *log.Logger
}

func defaultSSDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".betafab_ssdb")
}

func (s *settings) env(stderr io.Writer) (*env, error) {
	logger := log.New(stderr, "betafab: ", 0)
	sess := molmodel.NewSession(fraglib.Default(s.fragments), rand.New(rand.NewSource(s.seed)))
	if s.verbose {
		sess.Log = logger
	}
	o := peptide.DefaultOptions()
	o.Strict = s.strict
	o.Log = logger
	if s.tries > 0 {
		o.FitTries = s.tries
	}
	db := ssdb.New()
	if s.ssdb != "" {
		var err error
		db, err = ssdb.Open(ssdb.FileStore{Path: s.ssdb})
		if err != nil {
			return nil, err
		}
	}
	return &env{sess: sess, b: peptide.NewBuilder(sess, o), db: db, log: logger}, nil
}

func newRootCmd() *cobra.Command {
	s := &settings{}
	root := &cobra.Command{
		Use:   "betafab",
		Short: "Build alpha/beta-peptides",
		Long: `
betafab builds peptides made of alpha and beta amino acids, from a sequence
such as "ACE, (S)B3hV{H14M}, (2S3R)B23h(2A3L), (S)AK, NME", and folds them
into the secondary structures of its database.`,
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.Int64Var(&s.seed, "seed", 1, "Seed for the random rotations used when a fit does not converge")
	pf.BoolVarP(&s.verbose, "verbose", "v", false, "Log every modelling operation")
	pf.BoolVar(&s.strict, "strict", false, "Fail on torsions that can't be set, instead of warning")
	pf.StringVar(&s.fragments, "fragments", "", "Directory with PDB fragments that override the built-in ones")
	pf.StringVar(&s.ssdb, "ssdb", defaultSSDB(), "File with the secondary structure database (empty for the built-in one)")
	pf.IntVar(&s.tries, "tries", 0, "Maximum number of fits attempted per peptide bond (0 for the default)")

	root.AddCommand(buildCmd(s), foldCmd(s), checkCmd(s), torsionsCmd(s), ssdbCmd(s))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
