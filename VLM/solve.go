package VLM

import (
	"fmt"
	"sync"

	"github.com/openaero/govlm/utils"
)

// InfluenceCoefficients assembles the dense matrix mapping unit panel
// circulations to induced normal velocities at every control point, then
// factors it. Assembly is parallel over receiving panels: each worker owns a
// disjoint row range, so no locking is needed. The factorization is reused
// by the circulation solve and all five derivative solves.
func (sys *System) InfluenceCoefficients() (err error) {
	if err = sys.requireState(GeometryLoaded, "influence coefficient assembly"); err != nil {
		return
	}
	var (
		N  = sys.nTotal
		np = sys.parallelDegree()
		pm = utils.NewPartitionMap(np, N)
		wg sync.WaitGroup
	)
	sys.AIC = utils.NewMatrix(N, N)
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		wg.Add(1)
		go func(rMin, rMax int) {
			defer wg.Done()
			sys.assembleRows(rMin, rMax)
		}(pm.GetBucketRange(bn))
	}
	wg.Wait()
	if sys.lu, err = sys.AIC.LUFactorize(); err != nil {
		err = fmt.Errorf("influence matrix is not solvable (degenerate or duplicate panel geometry): %w", err)
		return
	}
	sys.state = InfluenceCoefficientsCurrent
	return
}

// assembleRows fills AIC rows [rMin, rMax) of the global receiving-panel
// index.
func (sys *System) assembleRows(rMin, rMax int) {
	for nr, rs := range sys.Surfaces {
		for i, rp := range rs.Panels {
			var (
				row = sys.offsets[nr] + i
			)
			if row < rMin || row >= rMax {
				continue
			}
			var (
				rcp  = rp.ControlPoint()
				nhat = rp.Normal()
			)
			for ns, ss := range sys.Surfaces {
				var (
					opts = sys.pairOpts(rs, ss)
					off  = sys.offsets[ns]
				)
				for k, vk := range ss.Influence(rcp, opts) {
					sys.AIC.Set(row, off+k, vk.Dot(nhat))
				}
			}
		}
	}
}

// NormalVelocities builds the boundary condition right hand side and its
// five derivative right hand sides: the external velocity (freestream,
// rotation, user field, wake) resolved along each control point normal,
// negated so that the bound circulation cancels it.
func (sys *System) NormalVelocities() (err error) {
	if err = sys.requireState(InfluenceCoefficientsCurrent, "normal velocity update"); err != nil {
		return
	}
	var (
		N = sys.nTotal
	)
	sys.w = make([]float64, N)
	for d := 0; d < NDeriv; d++ {
		sys.wd[d] = make([]float64, N)
	}
	for n, s := range sys.Surfaces {
		for i, p := range s.Panels {
			var (
				row  = sys.offsets[n] + i
				rcp  = p.ControlPoint()
				nhat = p.Normal()
				Vext = sys.FS.ExternalVelocityDual(rcp, sys.Ref)
			)
			for _, wake := range sys.Wakes {
				// Wake circulation is held fixed within a step, so it
				// contributes to the primal only.
				Vext.V = Vext.V.Add(wake.InducedVelocity(rcp))
			}
			vn := Vext.DotVec(nhat)
			sys.w[row] = -vn.V
			for d := 0; d < NDeriv; d++ {
				sys.wd[d][row] = -vn.D[d]
			}
		}
	}
	sys.state = NormalVelocitiesCurrent
	return
}

// Circulation solves the dense system for the bound circulation strengths
// and, reusing the same factorization, the five derivative systems.
func (sys *System) Circulation() (err error) {
	if err = sys.requireState(NormalVelocitiesCurrent, "circulation solve"); err != nil {
		return
	}
	if sys.Gamma, err = sys.lu.Solve(sys.w); err != nil {
		return
	}
	for d := 0; d < NDeriv; d++ {
		if sys.Gammad[d], err = sys.lu.Solve(sys.wd[d]); err != nil {
			return
		}
	}
	sys.state = CirculationCurrent
	return
}
