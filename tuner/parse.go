package tuner

import (
	"math"
	"strconv"
	"strings"
)

// response is the parsed form of the solver's output stream: rho,
// followed by the marking-multiplier vector u (length numFreqs) and the
// per-type value vector y (length numTypes, spec §4.3's Contract).
type response struct {
	rho float64
	u   []float64
	y   []float64
}

func parseResponse(out []byte, numFreqs, numTypes int) (*response, error) {
	fields := strings.Fields(string(out))
	want := 1 + numFreqs + numTypes
	if len(fields) < want {
		return nil, ErrTunerParseError.New("expected at least " + strconv.Itoa(want) + " tokens, got " + strconv.Itoa(len(fields)))
	}

	vals := make([]float64, want)
	for i := 0; i < want; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, ErrTunerParseError.New("token " + strconv.Itoa(i) + " (" + fields[i] + "): " + err.Error())
		}
		vals[i] = v
	}

	r := &response{
		rho: vals[0],
		u:   append([]float64(nil), vals[1:1+numFreqs]...),
		y:   append([]float64(nil), vals[1+numFreqs:want]...),
	}
	if !r.finite() {
		return nil, ErrTunerRejected.New()
	}
	return r, nil
}

func (r *response) finite() bool {
	if math.IsNaN(r.rho) || math.IsInf(r.rho, 0) || r.rho <= 0 {
		return false
	}
	for _, v := range r.u {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	for _, v := range r.y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
