package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEphemeralToken_Expiry(t *testing.T) {
	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	token := &EphemeralToken{Kind: EphemeralPasswordReset, CreatedAt: created}

	assert.False(t, token.IsExpired(created.Add(time.Hour), time.Hour))
	assert.True(t, token.IsExpired(created.Add(time.Hour+time.Nanosecond), time.Hour))
	assert.True(t, token.IsActive(created.Add(30*time.Minute), time.Hour))
}

func TestEphemeralToken_MarkUsedIsOneWay(t *testing.T) {
	now := time.Now()
	token := &EphemeralToken{CreatedAt: now}

	token.MarkUsed(now)
	first := *token.UsedAt
	token.MarkUsed(now.Add(time.Minute))

	assert.True(t, token.IsUsed)
	assert.Equal(t, first, *token.UsedAt)
	assert.False(t, token.IsActive(now, time.Hour))
}

func TestPerformanceReview_Transitions(t *testing.T) {
	now := time.Now()
	review := &PerformanceReview{Status: ReviewDraft}

	assert.False(t, review.Acknowledge(now))
	assert.True(t, review.Submit(now))
	assert.False(t, review.Submit(now))
	assert.True(t, review.Acknowledge(now))
	assert.Equal(t, ReviewCompleted, review.Status)

	review.RecalculateScore([]ReviewItem{{Score: 4}, {Score: 5}})
	if assert.NotNil(t, review.OverallScore) {
		assert.InDelta(t, 4.5, *review.OverallScore, 1e-9)
	}
	review.RecalculateScore(nil)
	assert.Nil(t, review.OverallScore)
}
