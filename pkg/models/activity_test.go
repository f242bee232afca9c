package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidScoreValue(t *testing.T) {
	valid := []float64{0.0, 0.5, 1.0, 2.5, 3.0, 4.5, 5.0}
	for _, v := range valid {
		assert.True(t, IsValidScoreValue(v), "expected %v to be valid", v)
	}

	invalid := []float64{-0.5, 5.5, 0.3, 2.7, 4.99}
	for _, v := range invalid {
		assert.False(t, IsValidScoreValue(v), "expected %v to be invalid", v)
	}
}

func TestScoreBucketIndex(t *testing.T) {
	assert.Equal(t, 0, ScoreBucketIndex(0.0))
	assert.Equal(t, 1, ScoreBucketIndex(0.5))
	assert.Equal(t, 6, ScoreBucketIndex(3.0))
	assert.Equal(t, 10, ScoreBucketIndex(5.0))

	assert.Equal(t, -1, ScoreBucketIndex(0.3))
	assert.Equal(t, -1, ScoreBucketIndex(5.5))
	assert.Equal(t, -1, ScoreBucketIndex(-1.0))
}

func TestScoreBucketValue(t *testing.T) {
	for idx := 0; idx < ScoreBuckets; idx++ {
		assert.Equal(t, idx, ScoreBucketIndex(ScoreBucketValue(idx)))
	}
}
