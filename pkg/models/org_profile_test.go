package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetBucket_Index(t *testing.T) {
	assert.Equal(t, 0, BudgetXS.Index())
	assert.Equal(t, 2, BudgetM.Index())
	assert.Equal(t, 4, BudgetXL.Index())
	assert.Equal(t, -1, BudgetBucket("HUGE").Index())
	assert.Equal(t, -1, BudgetBucket("").Index())
}

func TestBudgetBucket_IsValid(t *testing.T) {
	assert.True(t, BudgetS.IsValid())
	assert.False(t, BudgetBucket("m").IsValid(), "buckets are case-sensitive")
}
