package sim

import (
	"fmt"
	"math/big"
)

// VTime is simulation time as a rational number of picoseconds, matching
// the time model every clock period and wait_for duration is measured
// against. A rational (rather than floating-point) representation keeps
// repeated period accumulation exact across long runs.
type VTime struct {
	ps *big.Rat
}

// Zero is simulation time 0.
var Zero = VTime{ps: new(big.Rat)}

// PicosecondsRat constructs a VTime from an exact picosecond count.
func PicosecondsRat(ps *big.Rat) VTime { return VTime{ps: new(big.Rat).Set(ps)} }

// Picoseconds constructs a VTime from an integral picosecond count.
func Picoseconds(ps int64) VTime {
	return VTime{ps: new(big.Rat).SetInt64(ps)}
}

// Add returns t plus d.
func (t VTime) Add(d VTime) VTime {
	return VTime{ps: new(big.Rat).Add(rat(t), rat(d))}
}

// Before reports whether t is strictly earlier than u.
func (t VTime) Before(u VTime) bool { return rat(t).Cmp(rat(u)) < 0 }

// Seconds returns t as floating-point seconds, for handing to an
// akita-style float64 time base; precision loss only matters past
// femtosecond resolution, which this model never schedules at.
func (t VTime) Seconds() float64 {
	f, _ := new(big.Rat).Quo(rat(t), picPerSec).Float64()
	return f
}

// FromSeconds constructs a VTime from floating-point seconds, rounding to
// the nearest picosecond; used to translate an engine callback's time
// back into the model's rational domain.
func FromSeconds(s float64) VTime {
	r := new(big.Rat).SetFloat64(s)
	if r == nil {
		r = new(big.Rat)
	}
	r.Mul(r, picPerSec)
	return Picoseconds(VTime{ps: r}.RoundPicoseconds())
}

// RoundPicoseconds returns t rounded to the nearest integral picosecond,
// the integer timestamp a textual waveform format like VCD needs.
// Simulation time never runs negative, so this assumes t >= 0.
func (t VTime) RoundPicoseconds() int64 {
	r := rat(t)
	num, den := r.Num(), r.Denom()
	q := new(big.Int).Div(num, den)
	rem := new(big.Int).Mod(num, den)
	rem.Mul(rem, big.NewInt(2))
	if rem.Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	return q.Int64()
}

func (t VTime) String() string {
	f, _ := rat(t).Float64()
	return fmt.Sprintf("%gps", f)
}

var picPerSec = big.NewRat(1_000_000_000_000, 1)

func rat(t VTime) *big.Rat {
	if t.ps == nil {
		return new(big.Rat)
	}
	return t.ps
}
