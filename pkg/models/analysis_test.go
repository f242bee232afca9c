package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMostCommonBucket(t *testing.T) {
	var dist [ScoreBuckets]int
	dist[6] = 5
	dist[8] = 3
	assert.Equal(t, 6, MostCommonBucket(dist))
}

func TestMostCommonBucketTiePrefersLowestScore(t *testing.T) {
	var dist [ScoreBuckets]int
	dist[4] = 7
	dist[9] = 7
	assert.Equal(t, 4, MostCommonBucket(dist))
	assert.Equal(t, 2.0, ScoreBucketValue(MostCommonBucket(dist)))
}

func TestMostCommonBucketEmptyDistribution(t *testing.T) {
	var dist [ScoreBuckets]int
	// All-zero counts resolve to the lowest bucket (score 0.0).
	assert.Equal(t, 0, MostCommonBucket(dist))
}
