package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(ResumesIngestedTotal.WithLabelValues("success"))
	ResumesIngestedTotal.WithLabelValues("success").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ResumesIngestedTotal.WithLabelValues("success")))

	DictionarySkills.Set(42)
	assert.Equal(t, 42.0, testutil.ToFloat64(DictionarySkills))
}

func TestScoreHistogramBuckets(t *testing.T) {
	MatchScore.Observe(55)
	assert.Equal(t, 1, testutil.CollectAndCount(MatchScore))
}
