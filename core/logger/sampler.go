package logger

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// sampler lets through keep out of every `of` calls. A zero ratio lets
// everything through.
type sampler struct {
	keep atomic.Uint32
	of   atomic.Uint32
	seen atomic.Uint64
}

func newSampler(keep, of int) *sampler {
	s := &sampler{}
	s.Set(keep, of)
	return s
}

// Set replaces the ratio and restarts the cycle.
func (s *sampler) Set(keep, of int) {
	if keep <= 0 || of <= 0 {
		keep, of = 0, 0
	}
	s.keep.Store(uint32(min(keep, of)))
	s.of.Store(uint32(of))
	s.seen.Store(0)
}

// Allow reports whether the next event passes.
func (s *sampler) Allow() bool {
	of := uint64(s.of.Load())
	if of == 0 {
		return true
	}
	n := s.seen.Add(1) - 1
	return n%of < uint64(s.keep.Load())
}

// parseRatio reads "1/50" as (1, 50) and a bare "50" as (1, 50).
// Anything unparsable or non-positive yields (0, 0).
func parseRatio(raw string) (keep, of int) {
	raw = strings.TrimSpace(raw)
	if a, b, ok := strings.Cut(raw, "/"); ok {
		k, errK := strconv.Atoi(strings.TrimSpace(a))
		o, errO := strconv.Atoi(strings.TrimSpace(b))
		if errK != nil || errO != nil {
			return 0, 0
		}
		return k, o
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, 0
	}
	return 1, n
}
