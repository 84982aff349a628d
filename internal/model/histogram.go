package model

import "math"

// NumBuckets is the number of coverage categories. The first bucket is 0%
// coverage, the last is exactly 100%.
const NumBuckets = 12

// Histogram accumulates per-variable coverage results over one binary.
// One traversal owns one histogram; nothing is shared across binaries.
type Histogram struct {
	// Buckets maps a coverage category to its occurrence count.
	Buckets [NumBuckets]uint64
	// Processed counts every scored variable or parameter.
	Processed uint64
	// Sum accumulates the truncated per-entry percentages. The average is
	// derived from these already-truncated values, not from the raw
	// coverage, so it compounds the truncation. That matches the original
	// calculator and is kept on purpose.
	Sum float64
}

// BucketFor maps a truncated coverage percentage to its category index:
// 0 stays in bucket 0, 100 goes to the last bucket, and everything in
// between lands in value/10 + 1. The integer division puts 10..19 in the
// same bucket as the 11..19 label it is reported under.
func BucketFor(coverage int) int {
	switch {
	case coverage == 0:
		return 0
	case coverage >= 100:
		return NumBuckets - 1
	default:
		return coverage/10 + 1
	}
}

// Record files one coverage result. The percentage is truncated to an
// integer before both bucketing and the running sum.
func (h *Histogram) Record(coverage float64) {
	truncated := int(coverage)
	h.Buckets[BucketFor(truncated)]++
	h.Processed++
	h.Sum += float64(truncated)
}

// Average returns the rounded mean of the truncated per-entry percentages,
// or 0 when nothing was processed.
func (h *Histogram) Average() int {
	if h.Processed == 0 {
		return 0
	}

	return int(math.Round(h.Sum / float64(h.Processed)))
}

// FileReport pairs one analyzed binary with its histogram.
type FileReport struct {
	Path      Path
	Histogram Histogram
}
