package utils

import (
	"fmt"
	"lms/config"
	"lms/database"
	"lms/models"
	learning "lms/models/learning"
	"net/smtp"
	"strings"
)

// SendEmail delivers an HTML email through the configured SMTP account.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learning Platform <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A57; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A57; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #6DA7D7; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">%s</div>
			<div class="footer">You are receiving this email because of activity on your learning account.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendEnrollmentDecisionEmail notifies a learner that their enrollment
// request was approved or rejected. Best-effort: failures are logged by
// SendEmail and never surfaced to the review flow.
func SendEnrollmentDecisionEmail(userID, courseID uint, approved bool, notes string) {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return
	}
	var course learning.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return
	}

	decision := "rejected"
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your enrollment request for <b>%s</b> was not approved this time.</p>", user.Name, course.Title)
	if approved {
		decision = "approved"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your enrollment request for <b>%s</b> has been approved. The first module is now open for you!</p>", user.Name, course.Title)
	}
	if notes != "" {
		body += fmt.Sprintf(`<div class="info-box">Reviewer notes: %s</div>`, notes)
	}

	subject := fmt.Sprintf("Enrollment %s: %s", decision, course.Title)
	SendEmail([]string{user.Email}, subject, getEmailTemplate("Enrollment Update", body))
}

// SendGrantDecisionEmail notifies a learner about their extra-attempt
// request. Best-effort like the enrollment email.
func SendGrantDecisionEmail(userID, quizID uint, approved bool, notes string) {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return
	}
	var quiz learning.Quiz
	if err := db.Where("id = ?", quizID).First(&quiz).Error; err != nil {
		return
	}

	decision := "rejected"
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your request for an additional attempt on <b>%s</b> was not approved.</p>", user.Name, quiz.Title)
	if approved {
		decision = "approved"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your request for an additional attempt on <b>%s</b> has been approved. The extra attempt is valid once.</p>", user.Name, quiz.Title)
	}
	if notes != "" {
		body += fmt.Sprintf(`<div class="info-box">Reviewer notes: %s</div>`, notes)
	}

	subject := fmt.Sprintf("Attempt request %s: %s", decision, quiz.Title)
	SendEmail([]string{user.Email}, subject, getEmailTemplate("Quiz Attempt Update", body))
}
