package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
)

func stepsWithStatuses(statuses ...models.StepStatus) []models.PlanStep {
	steps := make([]models.PlanStep, len(statuses))
	for i, s := range statuses {
		steps[i] = models.PlanStep{StepNumber: i + 1, Title: "step", Tag: models.TagHome, Status: s}
	}
	return steps
}

func TestNextProjectStatusAllDone(t *testing.T) {
	steps := stepsWithStatuses(models.StepDone, models.StepDone, models.StepDone)

	assert.Equal(t, models.StatusCompleted, NextProjectStatus(steps, models.StatusInProgress))
	assert.Equal(t, models.StatusCompleted, NextProjectStatus(steps, models.StatusPlanReady))
	// Already completed stays completed, no re-transition.
	assert.Equal(t, models.StatusCompleted, NextProjectStatus(steps, models.StatusCompleted))
}

func TestNextProjectStatusFirstDoneStartsProgress(t *testing.T) {
	steps := stepsWithStatuses(models.StepDone, models.StepNotStarted, models.StepNotStarted)

	assert.Equal(t, models.StatusInProgress, NextProjectStatus(steps, models.StatusPlanReady))
	// Only PLAN_READY advances on partial progress.
	assert.Equal(t, models.StatusInProgress, NextProjectStatus(steps, models.StatusInProgress))
	assert.Equal(t, models.StatusPendingReview, NextProjectStatus(steps, models.StatusPendingReview))
}

func TestNextProjectStatusNoDoneSteps(t *testing.T) {
	steps := stepsWithStatuses(models.StepInProgress, models.StepNotStarted)

	assert.Equal(t, models.StatusPlanReady, NextProjectStatus(steps, models.StatusPlanReady))
}

func TestNextProjectStatusEmptySteps(t *testing.T) {
	assert.Equal(t, models.StatusPlanReady, NextProjectStatus(nil, models.StatusPlanReady))
}

// Completing steps one by one must end in COMPLETED no matter the order.
func TestNextProjectStatusOrderIndependent(t *testing.T) {
	orders := [][]int{
		{0, 1, 2, 3, 4},
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
		{1, 4, 0, 3, 2},
	}

	for _, order := range orders {
		steps := stepsWithStatuses(
			models.StepNotStarted, models.StepNotStarted, models.StepNotStarted,
			models.StepNotStarted, models.StepNotStarted,
		)
		status := models.StatusPlanReady
		for _, idx := range order {
			steps[idx].Status = models.StepDone
			status = NextProjectStatus(steps, status)
		}
		assert.Equal(t, models.StatusCompleted, status, "order %v", order)
	}
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, float64(0), ProgressPercent(nil))
	assert.Equal(t, float64(0), ProgressPercent(stepsWithStatuses(models.StepInProgress, models.StepNotStarted)))
	assert.Equal(t, float64(50), ProgressPercent(stepsWithStatuses(models.StepDone, models.StepNotStarted)))
	assert.Equal(t, float64(100), ProgressPercent(stepsWithStatuses(models.StepDone, models.StepDone)))
}

func TestMilestoneReachedEqualityPolicy(t *testing.T) {
	t.Setenv("MILESTONE_POLICY", "")

	assert.True(t, milestoneReached(1, 1))
	assert.True(t, milestoneReached(5, 5))
	// The legacy gap: jumping past a threshold skips the award.
	assert.False(t, milestoneReached(6, 5))
	assert.False(t, milestoneReached(4, 5))
}

func TestMilestoneReachedAtLeastPolicy(t *testing.T) {
	t.Setenv("MILESTONE_POLICY", "at_least")

	assert.True(t, milestoneReached(1, 1))
	assert.True(t, milestoneReached(6, 5))
	assert.True(t, milestoneReached(12, 10))
	assert.False(t, milestoneReached(4, 5))
}
