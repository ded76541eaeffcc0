package VLM

import (
	"github.com/openaero/govlm/utils"
)

// StabilityDerivatives packages the classic longitudinal and
// lateral-directional derivative set in the stability frame. Rates are the
// normalized body rates carried in Freestream.Omega, so no additional
// b/2V or c/2V scaling is applied here.
type StabilityDerivatives struct {
	CLa, CLq      float64
	CYb, CYp, CYr float64
	Clb, Clp, Clr float64
	Cma, Cmq      float64
	Cnb, Cnp, Cnr float64
}

// StabilityDerivativesSet extracts the named derivative set from the full
// five-parameter shadow output.
func (sys *System) StabilityDerivativesSet() (sd StabilityDerivatives, err error) {
	var (
		dCF, dCM [NDeriv]utils.Vec3
	)
	dCF, dCM, err = sys.BodyForcesDerivatives(Stability)
	if err != nil {
		return
	}
	sd = StabilityDerivatives{
		CLa: dCF[DerivAlpha][2],
		CLq: dCF[DerivQ][2],
		CYb: dCF[DerivBeta][1],
		CYp: dCF[DerivP][1],
		CYr: dCF[DerivR][1],
		Clb: dCM[DerivBeta][0],
		Clp: dCM[DerivP][0],
		Clr: dCM[DerivR][0],
		Cma: dCM[DerivAlpha][1],
		Cmq: dCM[DerivQ][1],
		Cnb: dCM[DerivBeta][2],
		Cnp: dCM[DerivP][2],
		Cnr: dCM[DerivR][2],
	}
	return
}
