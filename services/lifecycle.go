package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
	"github.com/Lottie128/stem-mentor-platform-sub000/utils"
	"github.com/Lottie128/stem-mentor-platform-sub000/ws"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrPlanNotFound    = errors.New("project has no plan")
	ErrStepOutOfRange  = errors.New("step index out of range")
	ErrUpdateConflict  = errors.New("plan was modified concurrently")
)

// stepUpdateRetries bounds the optimistic-concurrency retry loop on the
// steps document.
const stepUpdateRetries = 3

type milestone struct {
	Threshold int64
	Type      models.AwardType
	Title     string
}

var milestones = []milestone{
	{1, models.AwardFirstProject, "First Project Completed"},
	{5, models.AwardFiveProjects, "Five Projects Completed"},
	{10, models.AwardTenProjects, "Ten Projects Completed"},
}

// milestoneReached applies the milestone policy. The legacy behaviour is an
// equality check (a student jumping past a threshold skips that award);
// MILESTONE_POLICY=at_least switches to >= with the unique index preventing
// double grants.
func milestoneReached(completed, threshold int64) bool {
	if os.Getenv("MILESTONE_POLICY") == "at_least" {
		return completed >= threshold
	}
	return completed == threshold
}

// NextProjectStatus derives the project status from its steps. Evaluated in
// order: all done wins, then the first-progress transition out of PLAN_READY.
func NextProjectStatus(steps []models.PlanStep, current models.ProjectStatus) models.ProjectStatus {
	if len(steps) == 0 {
		return current
	}
	allDone := true
	anyDone := false
	for _, s := range steps {
		if s.Status == models.StepDone {
			anyDone = true
		} else {
			allDone = false
		}
	}
	if allDone && current != models.StatusCompleted {
		return models.StatusCompleted
	}
	if anyDone && current == models.StatusPlanReady {
		return models.StatusInProgress
	}
	return current
}

// ProgressPercent is the share of done steps, 0-100.
func ProgressPercent(steps []models.PlanStep) float64 {
	if len(steps) == 0 {
		return 0
	}
	done := 0
	for _, s := range steps {
		if s.Status == models.StepDone {
			done++
		}
	}
	return float64(done) / float64(len(steps)) * 100
}

// RecordStepStatus mutates one step of the student's project plan and applies
// the derived project transition. The steps document is written with a
// compare-and-swap on the plan version; on conflict the whole read-modify-write
// is retried from a fresh fetch.
func RecordStepStatus(db *gorm.DB, projectID, studentID uuid.UUID, stepIndex int, newStatus models.StepStatus) (*models.Project, error) {
	for attempt := 0; attempt < stepUpdateRetries; attempt++ {
		var project models.Project
		if err := db.Preload("Plan").First(&project, "id = ? AND student_id = ?", projectID, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, err
		}
		if project.Plan == nil {
			return nil, ErrPlanNotFound
		}
		plan := project.Plan
		if stepIndex < 0 || stepIndex >= len(plan.Steps) {
			return nil, ErrStepOutOfRange
		}

		steps := make([]models.PlanStep, len(plan.Steps))
		copy(steps, plan.Steps)
		steps[stepIndex].Status = newStatus

		next := NextProjectStatus(steps, project.Status)

		var conflicted bool
		err := db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.ProjectPlan{}).
				Where("id = ? AND version = ?", plan.ID, plan.Version).
				Select("steps", "version").
				Updates(models.ProjectPlan{Steps: steps, Version: plan.Version + 1})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				conflicted = true
				return ErrUpdateConflict
			}

			if next != project.Status {
				updates := map[string]interface{}{"status": next}
				if next == models.StatusCompleted {
					now := time.Now()
					updates["completed_at"] = &now
				}
				if err := tx.Model(&models.Project{}).Where("id = ?", project.ID).Updates(updates).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if conflicted {
			continue
		}
		if err != nil {
			return nil, err
		}

		project.Plan.Steps = steps
		project.Plan.Version = plan.Version + 1
		completed := next == models.StatusCompleted && project.Status != models.StatusCompleted
		project.Status = next

		if completed {
			// Check-then-create effects outside the write transaction;
			// every sub-step is idempotent, so a partial failure is
			// recovered by the next completion trigger.
			if err := RunCompletionEffects(db, &project); err != nil {
				log.Println("completion effects failed:", err)
			}
		}

		go ws.SendProjectStatusUpdate(project.ID.String(), string(project.Status), ProgressPercent(steps))

		return &project, nil
	}
	return nil, ErrUpdateConflict
}

// RunCompletionEffects grants milestone awards and issues the STEM_ORG
// certificate for a project that just transitioned to COMPLETED. Safe to
// re-run: every grant is guarded by an existence check and the unique index.
func RunCompletionEffects(db *gorm.DB, project *models.Project) error {
	var completed int64
	if err := db.Model(&models.Project{}).
		Where("student_id = ? AND status = ?", project.StudentID, models.StatusCompleted).
		Count(&completed).Error; err != nil {
		return err
	}

	for _, m := range milestones {
		if !milestoneReached(completed, m.Threshold) {
			continue
		}
		if err := grantMilestoneAward(db, project.StudentID, m); err != nil {
			return err
		}
	}

	return issueCompletionCertificate(db, project)
}

func grantMilestoneAward(db *gorm.DB, studentID uuid.UUID, m milestone) error {
	var existing models.Award
	err := db.First(&existing, "student_id = ? AND award_type = ?", studentID, m.Type).Error
	if err == nil {
		return nil // already granted
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	awardType := m.Type
	award := models.Award{
		StudentID:   studentID,
		Title:       m.Title,
		Description: fmt.Sprintf("Awarded for completing %d project(s).", m.Threshold),
		AwardType:   &awardType,
	}
	if err := db.Create(&award).Error; err != nil {
		// A concurrent completion got there first.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}

	go notifyAward(db, award)
	return nil
}

func issueCompletionCertificate(db *gorm.DB, project *models.Project) error {
	var existing models.Certificate
	err := db.First(&existing,
		"student_id = ? AND project_id = ? AND certificate_type = ?",
		project.StudentID, project.ID, models.CertStemOrg).Error
	if err == nil {
		return nil // already issued
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	cert := models.Certificate{
		StudentID:        project.StudentID,
		ProjectID:        project.ID,
		CertificateType:  models.CertStemOrg,
		CertificateNo:    NewCertificateNumber(project.StudentID),
		VerificationCode: NewVerificationCode(),
	}
	if err := db.Create(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}

	go notifyCertificate(db, cert, project.Title)
	return nil
}

func notifyAward(db *gorm.DB, award models.Award) {
	ws.SendUserEvent(award.StudentID.String(), "award_granted", award.Title)

	var student models.User
	if err := db.First(&student, "id = ?", award.StudentID).Error; err != nil {
		return
	}
	body := `
	<h3>Congratulations ` + student.FullName + `!</h3>
	<p>You have earned a new award: <b>` + award.Title + `</b>.</p>
	<p>` + award.Description + `</p>
	<hr>
	<p><i>This is an automated email, please do not reply.</i></p>
	`
	if err := utils.SendEmail(student.Email, "You earned a new award!", body); err != nil {
		log.Println("award email failed:", err)
	}
}

func notifyCertificate(db *gorm.DB, cert models.Certificate, projectTitle string) {
	ws.SendUserEvent(cert.StudentID.String(), "certificate_issued", cert.CertificateNo)

	var student models.User
	if err := db.First(&student, "id = ?", cert.StudentID).Error; err != nil {
		return
	}
	body := `
	<h3>Congratulations ` + student.FullName + `!</h3>
	<p>Your certificate for completing <b>` + projectTitle + `</b> is ready.</p>
	<p><b>Certificate number:</b> ` + cert.CertificateNo + `<br>
	<b>Verification code:</b> ` + cert.VerificationCode + `</p>
	<hr>
	<p><i>This is an automated email, please do not reply.</i></p>
	`
	if err := utils.SendEmail(student.Email, "Your project certificate is ready", body); err != nil {
		log.Println("certificate email failed:", err)
	}
}
