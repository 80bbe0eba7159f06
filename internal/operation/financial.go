package operation

import "math"

const (
	// DefaultIRRGuess is the starting rate for IRR when none is given.
	DefaultIRRGuess = 0.10

	irrMaxIterations = 100
	irrTolerance     = 1e-4
)

// CompoundInterest returns the future value of principal after years of
// annual compounding at rate percent.
func CompoundInterest(principal, rate, years float64) float64 {
	return principal * math.Pow(1+rate/100, years)
}

// Mortgage returns the monthly payment for an amortized loan with an annual
// rate in percent.
func Mortgage(principal, rate, years float64) (float64, error) {
	monthlyRate := rate / 100 / 12
	months := years * 12
	growth := math.Pow(1+monthlyRate, months)
	denominator := growth - 1
	if denominator == 0 || math.IsNaN(denominator) {
		return 0, domainErr("mortgage", "payment undefined for a zero rate or term")
	}
	return principal * (monthlyRate * growth) / denominator, nil
}

// IRR returns the internal rate of return of flows, in percent, using
// Newton-Raphson from guess. Iteration stops once |NPV| < 1e-4 or after 100
// steps; an unconverged run returns the last estimate.
//
// A vanishing derivative or a rate that leaves the finite range is a domain
// error.
func IRR(flows []float64, guess float64) (float64, error) {
	if len(flows) == 0 {
		return 0, domainErr("irr", "no cash flows")
	}

	rate := guess
	for i := 0; i < irrMaxIterations; i++ {
		npv, derivative := npvAt(flows, rate)
		if math.Abs(npv) < irrTolerance {
			break
		}
		if derivative == 0 {
			return 0, domainErr("irr", "NPV derivative is zero")
		}
		rate -= npv / derivative
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return 0, domainErr("irr", "rate diverged")
		}
	}
	return rate * 100, nil
}

// npvAt returns the net present value of flows at rate and its derivative
// with respect to rate.
func npvAt(flows []float64, rate float64) (npv, derivative float64) {
	for j, cf := range flows {
		discount := math.Pow(1+rate, float64(j))
		npv += cf / discount
		derivative -= float64(j) * cf / (discount * (1 + rate))
	}
	return npv, derivative
}
