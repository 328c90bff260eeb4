package templates

import (
	"fmt"
	"html"
	"time"
)

// FormatTrainingDate renders t as d/Mon/yyyy, e.g. 1/Jan/2025.
func FormatTrainingDate(t time.Time) string {
	return t.Format("2/Jan/2006")
}

// RenderCode generates the verification code email.
func RenderCode(name, code string, ttl time.Duration) string {
	body := fmt.Sprintf(`<h2>Hello %s!</h2>
      <p>Thank you for signing up. To complete your registration, verify your email address with the code below:</p>
      <div class="info-card" style="text-align: center;">
        <span class="code">%s</span>
        <p>This code expires in %d minutes.</p>
      </div>
      <p>Return to the signup page, enter the 6-digit code and click "Verify Email".</p>
      <p style="font-size: 13px; color: #721c24;">If you didn't request this verification, please ignore this email. The code will expire automatically.</p>`,
		html.EscapeString(name), html.EscapeString(code), int(ttl/time.Minute))
	return layout("Verify Your Email Address", "#667eea", body)
}

// RenderWelcome generates the email sent once an account is verified.
func RenderWelcome(name, email string, employeeNumber int) string {
	body := fmt.Sprintf(`<h2>Welcome aboard, %s!</h2>
      <p>Your email has been verified and your account is ready.</p>
      <div class="info-card">
        <p><span class="info-label">Email:</span> %s</p>
        <p><span class="info-label">Employee number:</span> %d</p>
      </div>
      <p>You can now sign in to schedule and track trainings.</p>`,
		html.EscapeString(name), html.EscapeString(email), employeeNumber)
	return layout("Welcome to "+Brand, "#28a745", body)
}

// RenderTrainingReminder generates the reminder for an upcoming training.
// durationHours drives the end time shown next to the start time.
func RenderTrainingReminder(name string, scheduled time.Time, venue string, durationHours int) string {
	if durationHours <= 0 {
		durationHours = 1
	}
	end := scheduled.Add(time.Duration(durationHours) * time.Hour)
	body := fmt.Sprintf(`<p>This is a friendly reminder for an upcoming training session. All concerned must note the details and ensure attendance.</p>
      <div class="info-card">
        <p><span class="info-label">Title:</span> %s</p>
        <p><span class="info-label">Date:</span> %s</p>
        <p><span class="info-label">Time:</span> %s - %s</p>
        <p><span class="info-label">Venue:</span> %s</p>
        <p><span class="info-label">Duration:</span> %d hour(s)</p>
      </div>
      <p><strong>Attendance is mandatory.</strong> Please plan accordingly.</p>`,
		html.EscapeString(name),
		FormatTrainingDate(scheduled),
		scheduled.Format("03:04 PM"), end.Format("03:04 PM"),
		html.EscapeString(venue),
		durationHours)
	return layout("Training Reminder - "+name, "#4a90e2", body)
}
