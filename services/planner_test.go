package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
)

func TestParseGeneratedPlanPlainJSON(t *testing.T) {
	raw := `{
		"components": [{"name": "Breadboard", "description": "base", "quantity": 1, "cost": "₹100"}],
		"steps": [
			{"step_number": 7, "title": "First", "description": "do it", "tag": "home"},
			{"step_number": 9, "title": "Second", "description": "do more", "tag": "center"}
		],
		"safety_notes": "be careful"
	}`

	plan, err := ParseGeneratedPlan(raw)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 2)

	// Step numbers are renumbered sequentially and every step starts fresh.
	assert.Equal(t, 1, plan.Steps[0].StepNumber)
	assert.Equal(t, 2, plan.Steps[1].StepNumber)
	for _, s := range plan.Steps {
		assert.Equal(t, models.StepNotStarted, s.Status)
	}
	assert.Equal(t, models.TagCenter, plan.Steps[1].Tag)
	assert.Equal(t, "be careful", plan.SafetyNotes)
}

func TestParseGeneratedPlanWithFencesAndCommentary(t *testing.T) {
	raw := "Sure! Here is the build plan you asked for:\n```json\n" +
		`{"components": [], "steps": [{"title": "Only step", "description": "x", "tag": "weird"}], "safety_notes": ""}` +
		"\n```\nLet me know if you need changes."

	plan, err := ParseGeneratedPlan(raw)
	require.NoError(t, err)
	require.Len(t, plan.Steps, 1)
	// Unknown tags default to home.
	assert.Equal(t, models.TagHome, plan.Steps[0].Tag)
}

func TestParseGeneratedPlanRejectsGarbage(t *testing.T) {
	_, err := ParseGeneratedPlan("the model refused to answer")
	assert.Error(t, err)

	_, err = ParseGeneratedPlan(`{"components": [], "steps": [], "safety_notes": "x"}`)
	assert.Error(t, err, "a plan without steps is useless")
}

func TestFallbackPlanRobotType(t *testing.T) {
	plan := FallbackPlan(models.Project{Title: "Line Bot", ProjectType: "Robot"})

	assert.GreaterOrEqual(t, len(plan.Steps), 5)
	assert.NotEmpty(t, plan.Components)
	assert.NotEmpty(t, plan.SafetyNotes)
	assert.False(t, plan.AIGenerated)
	for _, s := range plan.Steps {
		assert.Equal(t, models.StepNotStarted, s.Status)
	}

	// Case-insensitive match on the type name.
	same := FallbackPlan(models.Project{ProjectType: "ROBOTICS"})
	assert.Equal(t, plan.Components[0].Name, same.Components[0].Name)
}

func TestFallbackPlanGenericType(t *testing.T) {
	robot := FallbackPlan(models.Project{ProjectType: "Robot"})
	generic := FallbackPlan(models.Project{ProjectType: "Weather Station"})

	assert.GreaterOrEqual(t, len(generic.Steps), 5)
	assert.NotEqual(t, robot.Components[0].Name, generic.Components[0].Name)
}

func TestGenerateWithoutGeminiFallsBack(t *testing.T) {
	p := NewPlanGenerator(nil)
	plan := p.Generate(context.Background(), models.Project{ProjectType: "Robot"})

	assert.NotNil(t, plan)
	assert.False(t, plan.AIGenerated)
	assert.GreaterOrEqual(t, len(plan.Steps), 5)
}
