package utils

import (
	"fmt"
	"lms/config"
	"lms/database"
	learning "lms/models/learning"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

func logScheduler(message string) {
	log.Printf("[REVIEW-DIGEST %s] %s", time.Now().Format(time.RFC3339), message)
}

// sendPendingReviewDigest emails the admin a summary of requests waiting for
// review. Skipped when there is nothing pending or no admin email configured.
func sendPendingReviewDigest() {
	db := database.Database.Db

	var pendingEnrollments, pendingGrants int64
	if err := db.Model(&learning.EnrollmentRequest{}).Where("status = ?", learning.StatusPending).Count(&pendingEnrollments).Error; err != nil {
		logScheduler("Error counting pending enrollment requests: " + err.Error())
		return
	}
	if err := db.Model(&learning.QuizAttemptRequest{}).Where("status = ?", learning.StatusPending).Count(&pendingGrants).Error; err != nil {
		logScheduler("Error counting pending attempt requests: " + err.Error())
		return
	}

	if pendingEnrollments == 0 && pendingGrants == 0 {
		logScheduler("No pending requests, digest skipped")
		return
	}
	if config.AppConfig.AdminEmail == "" {
		logScheduler("ADMIN_EMAIL not configured, digest skipped")
		return
	}

	body := fmt.Sprintf(
		"<p>Requests waiting for review:</p><ul><li>Enrollment requests: <b>%d</b></li><li>Extra attempt requests: <b>%d</b></li></ul>",
		pendingEnrollments, pendingGrants,
	)

	if err := SendEmail([]string{config.AppConfig.AdminEmail}, "Pending review digest", getEmailTemplate("Pending Reviews", body)); err != nil {
		logScheduler("Error sending digest: " + err.Error())
		return
	}
	logScheduler(fmt.Sprintf("Digest sent (%d enrollment, %d attempt requests pending)", pendingEnrollments, pendingGrants))
}

// StartReviewScheduler runs the pending-review digest every day at 06:00.
func StartReviewScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("0 6 * * *", sendPendingReviewDigest); err != nil {
		log.Fatalf("Failed to schedule review digest: %v", err)
	}

	c.Start()
	logScheduler("Review digest scheduler started")
}
