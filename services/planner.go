package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
)

// GeneratedPlan is the plan provider's output contract.
type GeneratedPlan struct {
	Components  []models.PlanComponent `json:"components"`
	Steps       []models.PlanStep      `json:"steps"`
	SafetyNotes string                 `json:"safety_notes"`
	AIGenerated bool                   `json:"-"`
}

// PlanGenerator produces a build plan for a project. With a Gemini client it
// asks the model first; any request or parse failure falls back to the
// deterministic templates, so Generate never fails.
type PlanGenerator struct {
	gemini *Gemini
}

func NewPlanGenerator(g *Gemini) *PlanGenerator {
	return &PlanGenerator{gemini: g}
}

func (p *PlanGenerator) Generate(ctx context.Context, project models.Project) *GeneratedPlan {
	if p.gemini == nil {
		return FallbackPlan(project)
	}

	prompt := fmt.Sprintf(`
You are an AI mentor creating a build plan for a student STEM project.

Project title: %s
Project type: %s
Purpose: %s
Experience level: %s
Available tools: %s
Budget range: %s

Create a practical build plan. Requirements:
- 5 to 10 ordered steps a %s-level student can follow.
- Each step tagged "home" (safe to do unsupervised) or "center" (needs supervision).
- A bill of materials with quantity and an indicative cost in INR.
- Safety notes covering tools and electricity.

Return valid JSON with exactly this structure:
{
  "components": [
    {"name": "Component name", "description": "What it is for", "quantity": 1, "cost": "₹100-200"}
  ],
  "steps": [
    {"step_number": 1, "title": "Step title", "description": "What to do", "tag": "home"}
  ],
  "safety_notes": "Safety guidance for this project."
}

Return only valid JSON, no other text.
`, project.Title, project.ProjectType, project.Purpose, project.ExperienceLevel,
		project.AvailableTools, project.BudgetRange, project.ExperienceLevel)

	raw, err := p.gemini.GenerateText(ctx, prompt)
	if err != nil {
		log.Println("plan generation via Gemini failed, using template:", err)
		return FallbackPlan(project)
	}

	plan, err := ParseGeneratedPlan(raw)
	if err != nil {
		log.Println("cannot parse Gemini plan, using template:", err)
		return FallbackPlan(project)
	}
	plan.AIGenerated = true
	return plan
}

// ParseGeneratedPlan pulls the first JSON object out of a model response that
// may be wrapped in code fences or surrounded by commentary, and normalizes
// the result (sequential step numbers, every step not_started, valid tags).
func ParseGeneratedPlan(raw string) (*GeneratedPlan, error) {
	clean := extractJSONBlock(raw)
	if clean == "" {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var plan GeneratedPlan
	if err := json.Unmarshal([]byte(clean), &plan); err != nil {
		return nil, err
	}
	if len(plan.Steps) == 0 {
		return nil, fmt.Errorf("plan has no steps")
	}

	for i := range plan.Steps {
		plan.Steps[i].StepNumber = i + 1
		plan.Steps[i].Status = models.StepNotStarted
		if plan.Steps[i].Tag != models.TagHome && plan.Steps[i].Tag != models.TagCenter {
			plan.Steps[i].Tag = models.TagHome
		}
	}
	return &plan, nil
}

func extractJSONBlock(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "`")
	clean = strings.TrimPrefix(clean, "json")
	clean = strings.TrimSpace(clean)

	// Tolerate commentary around the object: take the outermost braces.
	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return clean[start : end+1]
}

// FallbackPlan is the deterministic template used whenever the AI path is
// unavailable. Robot-like project types get a robot bill of materials,
// everything else a generic electronics starter.
func FallbackPlan(project models.Project) *GeneratedPlan {
	if strings.Contains(strings.ToLower(project.ProjectType), "robot") {
		return robotTemplate()
	}
	return electronicsTemplate()
}

func robotTemplate() *GeneratedPlan {
	return &GeneratedPlan{
		Components: []models.PlanComponent{
			{Name: "Arduino Uno", Description: "Main controller board", Quantity: 1, Cost: "₹400-600"},
			{Name: "Chassis kit with wheels", Description: "2WD robot chassis", Quantity: 1, Cost: "₹250-400"},
			{Name: "BO motors", Description: "Geared DC motors for the wheels", Quantity: 2, Cost: "₹100-150"},
			{Name: "L298N motor driver", Description: "Drives both motors from the Arduino", Quantity: 1, Cost: "₹100-150"},
			{Name: "IR sensor modules", Description: "Line detection sensors", Quantity: 2, Cost: "₹60-100"},
			{Name: "Battery holder + cells", Description: "Power supply, 4xAA", Quantity: 1, Cost: "₹80-120"},
			{Name: "Jumper wires", Description: "Male-to-female assorted", Quantity: 20, Cost: "₹50-80"},
		},
		Steps: []models.PlanStep{
			{StepNumber: 1, Title: "Assemble the chassis", Description: "Mount the motors and wheels on the chassis and fix the battery holder.", Tag: models.TagHome, Status: models.StepNotStarted},
			{StepNumber: 2, Title: "Mount the electronics", Description: "Fix the Arduino and motor driver to the chassis with standoffs or tape.", Tag: models.TagHome, Status: models.StepNotStarted},
			{StepNumber: 3, Title: "Wire the motor driver", Description: "Connect motors to the L298N and the driver inputs to the Arduino pins.", Tag: models.TagCenter, Status: models.StepNotStarted},
			{StepNumber: 4, Title: "Wire the sensors", Description: "Connect both IR sensors facing the floor at the front of the chassis.", Tag: models.TagCenter, Status: models.StepNotStarted},
			{StepNumber: 5, Title: "Upload the test sketch", Description: "Upload a sketch that reads the sensors and prints values over serial.", Tag: models.TagCenter, Status: models.StepNotStarted},
			{StepNumber: 6, Title: "Program line following", Description: "Write the control loop: steer toward the line based on sensor readings.", Tag: models.TagHome, Status: models.StepNotStarted},
			{StepNumber: 7, Title: "Test and tune", Description: "Run the robot on a printed track and tune speed and thresholds.", Tag: models.TagHome, Status: models.StepNotStarted},
		},
		SafetyNotes: "Disconnect the battery before rewiring anything. Double-check motor driver polarity before powering on. Soldering, if needed, must be done at the center under supervision.",
	}
}

func electronicsTemplate() *GeneratedPlan {
	return &GeneratedPlan{
		Components: []models.PlanComponent{
			{Name: "Breadboard", Description: "Solderless prototyping board", Quantity: 1, Cost: "₹80-120"},
			{Name: "Arduino Nano", Description: "Compact controller board", Quantity: 1, Cost: "₹250-400"},
			{Name: "LED assortment", Description: "5mm LEDs, mixed colours", Quantity: 10, Cost: "₹30-50"},
			{Name: "Resistor kit", Description: "220Ω-10kΩ assortment", Quantity: 1, Cost: "₹50-80"},
			{Name: "Push buttons", Description: "Tactile switches", Quantity: 4, Cost: "₹20-40"},
			{Name: "Jumper wires", Description: "Breadboard jumper set", Quantity: 30, Cost: "₹50-80"},
			{Name: "USB cable", Description: "For programming and power", Quantity: 1, Cost: "₹50-100"},
		},
		Steps: []models.PlanStep{
			{StepNumber: 1, Title: "Understand the circuit", Description: "Sketch the circuit on paper and identify every component's role.", Tag: models.TagHome, Status: models.StepNotStarted},
			{StepNumber: 2, Title: "Set up the breadboard", Description: "Place the controller and power rails on the breadboard.", Tag: models.TagHome, Status: models.StepNotStarted},
			{StepNumber: 3, Title: "Wire the components", Description: "Connect LEDs, resistors and buttons following the sketch.", Tag: models.TagCenter, Status: models.StepNotStarted},
			{StepNumber: 4, Title: "Write the first program", Description: "Upload a program that blinks one LED to verify the toolchain.", Tag: models.TagCenter, Status: models.StepNotStarted},
			{StepNumber: 5, Title: "Build the full behaviour", Description: "Extend the program to the project's intended behaviour.", Tag: models.TagHome, Status: models.StepNotStarted},
			{StepNumber: 6, Title: "Test and document", Description: "Test all inputs, fix issues, and document the final circuit.", Tag: models.TagHome, Status: models.StepNotStarted},
		},
		SafetyNotes: "Work only with USB-level voltages. Never connect the circuit to mains power. Keep components away from small children.",
	}
}
