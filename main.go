// Copyright 2024 The OpenFedem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/openfedem/fedem-foundation-sub001/inp"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".json", true)
	verbose := io.ArgToBool(1, true)
	splitShells := io.ArgToBool(2, false)
	fixNegative := io.ArgToBool(3, false)
	precision := io.ArgToInt(4, 10)

	// message
	if verbose {
		io.PfWhite("\nOpenFedem Part Model Store\n")
		io.Pf("Copyright 2024 The OpenFedem Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"split parabolic shells", "splitShells", splitShells,
			"fix inverted elements", "fixNegative", fixNegative,
			"checksum precision (significant digits)", "precision", precision,
		))
	}

	// read and resolve model
	dir, fn := filepath.Split(fnamepath)
	m, err := inp.ReadModel(dir, fn, splitShells)
	if err != nil {
		chk.Panic("reading model failed:\n%v", err)
	}

	// verify geometry
	nzero, nneg := m.Verify(fixNegative)

	// report
	if verbose {
		io.Pf("\n%v\n", m)
		if m.HasLooseNodes() {
			io.Pforan("model has loose nodes\n")
		}
		if nzero > 0 || nneg > 0 {
			io.Pforan("geometry: %d zero-volume and %d inverted elements\n", nzero, nneg)
		}
		mp := m.MassProperties()
		io.Pf("total mass      = %v\n", mp.Mass)
		io.Pf("center of mass  = %v\n", mp.Cog)
		io.Pf("checksum        = %d\n", m.CheckSum(0, precision))
	}
}
