package invertedindex

import "sync/atomic"

// SamplingData buckets observed quantization-bit values into a small
// histogram. The original format counts these atomically without reading
// them back; here Node.Serialize's cold path is the one real writer, and
// ValuesCollected/the above_N buckets are exposed through Buckets for
// reporting. No code in this module reads them or decides anything on them.
type SamplingData struct {
	above1 atomic.Int64
	above2 atomic.Int64
	above3 atomic.Int64
	above4 atomic.Int64
	above5 atomic.Int64
	above6 atomic.Int64
	above7 atomic.Int64
	above8 atomic.Int64
	above9 atomic.Int64

	ValuesCollected atomic.Int64
}

// Observe records one quantization-bits value into the histogram.
func (s *SamplingData) Observe(value float32) {
	s.ValuesCollected.Add(1)
	buckets := [...]*atomic.Int64{&s.above1, &s.above2, &s.above3, &s.above4, &s.above5, &s.above6, &s.above7, &s.above8, &s.above9}
	for i, b := range buckets {
		if value > float32(i+1) {
			b.Add(1)
		}
	}
}

// Buckets returns the above_1..above_9 counts, for reporting.
func (s *SamplingData) Buckets() [9]int64 {
	return [9]int64{
		s.above1.Load(), s.above2.Load(), s.above3.Load(), s.above4.Load(), s.above5.Load(),
		s.above6.Load(), s.above7.Load(), s.above8.Load(), s.above9.Load(),
	}
}
