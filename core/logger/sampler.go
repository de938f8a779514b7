package logger

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// ratio is num events out of every den. A zero ratio lets everything through.
type ratio struct {
	num, den uint64
}

// ratioSampler passes the first num events of every window of den events.
type ratioSampler struct {
	r     atomic.Pointer[ratio]
	count atomic.Uint64
}

func newRatioSampler(num, den int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(num, den)
	return s
}

// Set replaces the ratio and restarts the window. Non-positive values
// disable sampling; num is capped at den.
func (s *ratioSampler) Set(num, den int) {
	r := &ratio{}
	if num > 0 && den > 0 {
		r.num, r.den = uint64(min(num, den)), uint64(den)
	}
	s.r.Store(r)
	s.count.Store(0)
}

// Allow reports whether the next event passes.
func (s *ratioSampler) Allow() bool {
	r := s.r.Load()
	if r == nil || r.den == 0 {
		return true
	}
	n := s.count.Add(1) - 1
	return n%r.den < r.num
}

// parseRatioSpec accepts "num/den" or a bare "den" meaning 1/den. Anything
// else, and non-positive values, yield 0/0.
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if numText, denText, ok := strings.Cut(spec, "/"); ok {
		num, err1 := strconv.Atoi(strings.TrimSpace(numText))
		den, err2 := strconv.Atoi(strings.TrimSpace(denText))
		if err1 != nil || err2 != nil {
			return 0, 0
		}
		return num, den
	}
	den, err := strconv.Atoi(spec)
	if err != nil || den <= 0 {
		return 0, 0
	}
	return 1, den
}
