package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		coverage int
		want     int
	}{
		{coverage: 0, want: 0},
		{coverage: 1, want: 1},
		{coverage: 9, want: 1},
		{coverage: 10, want: 2},
		{coverage: 19, want: 2},
		{coverage: 20, want: 3},
		{coverage: 29, want: 3},
		{coverage: 55, want: 6},
		{coverage: 90, want: 10},
		{coverage: 99, want: 10},
		{coverage: 100, want: 11},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, BucketFor(tt.coverage), "BucketFor(%d)", tt.coverage)
	}
}

func TestBucketFor_TotalAndDisjoint(t *testing.T) {
	// Every integer coverage between 0 and 100 lands in exactly one
	// bucket, 0 only feeds bucket 0 and 100 only feeds the last bucket.
	for coverage := 0; coverage <= 100; coverage++ {
		bucket := BucketFor(coverage)
		require.GreaterOrEqual(t, bucket, 0)
		require.Less(t, bucket, NumBuckets)

		if bucket == 0 {
			assert.Equal(t, 0, coverage)
		}
		if bucket == NumBuckets-1 {
			assert.Equal(t, 100, coverage)
		}
	}
}

func TestHistogram_Record_TruncatesBeforeBucketing(t *testing.T) {
	var h Histogram

	h.Record(9.99)
	assert.Equal(t, uint64(1), h.Buckets[1], "9.99 truncates to 9, bucket 1")

	h.Record(0.7)
	assert.Equal(t, uint64(1), h.Buckets[0], "0.7 truncates to 0, bucket 0")

	h.Record(100)
	assert.Equal(t, uint64(1), h.Buckets[NumBuckets-1])

	assert.Equal(t, uint64(3), h.Processed)
}

func TestHistogram_BucketsSumToProcessed(t *testing.T) {
	var h Histogram

	for _, coverage := range []float64{0, 1.5, 33.3, 55, 99.9, 100, 100, 12} {
		h.Record(coverage)
	}

	var sum uint64
	for _, count := range h.Buckets {
		sum += count
	}

	assert.Equal(t, h.Processed, sum)
}

func TestHistogram_Average_UsesTruncatedValues(t *testing.T) {
	var h Histogram

	// Raw average of 50.9 and 50.9 is 50.9, which would round to 51; the
	// per-entry truncation brings both down to 50 first.
	h.Record(50.9)
	h.Record(50.9)
	assert.Equal(t, 50, h.Average())
}

func TestHistogram_Average_Rounds(t *testing.T) {
	var h Histogram

	h.Record(100)
	h.Record(100)
	h.Record(100)
	h.Record(0)
	assert.Equal(t, 75, h.Average())

	var odd Histogram
	odd.Record(100)
	odd.Record(1)
	// 101/2 = 50.5 rounds to 51.
	assert.Equal(t, 51, odd.Average())
}

func TestHistogram_Average_Empty(t *testing.T) {
	var h Histogram

	assert.Equal(t, 0, h.Average())
}
