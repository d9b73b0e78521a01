package logger

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

type ratioSampler struct {
	mu          sync.Mutex
	numerator   int
	denominator int
	counter     int
}

func newRatioSampler(numerator, denominator int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(numerator, denominator)
	return s
}

// Set configures the sampling ratio as numerator allowed per denominator seen.
func (s *ratioSampler) Set(numerator, denominator int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if numerator <= 0 || denominator <= 0 {
		s.numerator, s.denominator, s.counter = 0, 0, 0
		return
	}
	if numerator > denominator {
		numerator = denominator
	}
	s.numerator = numerator
	s.denominator = denominator
	s.counter = 0
}

// Allow reports whether the current event should pass sampling.
func (s *ratioSampler) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.denominator <= 0 || s.numerator <= 0 {
		return true
	}
	s.counter++
	if s.counter > s.denominator {
		s.counter = 1
	}
	return s.counter <= s.numerator
}

// parseRatioSpec accepts "n/m" ratios or a bare integer m meaning "1/m".
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0
	}
	if strings.Contains(spec, "/") {
		parts := strings.SplitN(spec, "/", 2)
		num, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		den, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 == nil && err2 == nil {
			return num, den
		}
	}
	if v, err := strconv.Atoi(spec); err == nil {
		if v <= 0 {
			return 0, 0
		}
		return 1, v
	}
	return 0, 0
}

// Status maps an error to a unified status string for logs.
func Status(err error) string {
	if err != nil {
		return "fail"
	}
	return "ok"
}

// Took returns the rounded duration since start for compact logging.
func Took(start time.Time) time.Duration {
	return RoundMS(time.Since(start))
}

// RoundMS rounds a duration to the nearest millisecond for consistent logging.
func RoundMS(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d.Round(time.Millisecond)
}

// SummarizeStrings joins up to limit elements and reports whether truncation happened.
func SummarizeStrings(values []string, limit int) (string, bool) {
	if limit <= 0 {
		return "", len(values) > 0
	}
	if len(values) <= limit {
		return strings.Join(values, ", "), false
	}
	return strings.Join(values[:limit], ", "), true
}
