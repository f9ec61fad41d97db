package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
	"github.com/thetahouse/thetahouse/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment
// reminders and consignment expiry.
func StartCronJobs() {
	c := cron.New()

	// Run every minute to check for appointments in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}

	// Expire past-due consignments once a night
	_, err = c.AddFunc("0 2 * * *", expireConsignments)
	if err != nil {
		log.Fatalf("Failed to add consignment cron job: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started")
}

// sendAppointmentReminders checks for appointments and sends reminders
func sendAppointmentReminders() {
	var appointments []models.Appointment
	now := time.Now()
	// Look for appointments starting in the next hour
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("Customer").Preload("Service").Preload("Practitioner").
		Where("status = ? AND start_time BETWEEN ? AND ?", models.StatusConfirmed, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if appointment.Customer.Email == "" {
			continue
		}
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Customer.Email)
	}
}

// expireConsignments marks active consignments past their expiry date
func expireConsignments() {
	result := db.DB.Model(&models.Consignment{}).
		Where("status = ? AND expires_at < ?", models.ConsignmentActive, time.Now()).
		Update("status", models.ConsignmentExpired)
	if result.Error != nil {
		log.Printf("Error expiring consignments: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Expired %d consignment(s)", result.RowsAffected)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := fmt.Sprintf("Reminder: Upcoming Appointment - %s", appointment.Title)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Practitioner:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>ThetaHouse</p>
	`, appointment.Customer.Name, appointment.Service.Name, appointment.Practitioner.Name,
		appointment.StartTime.Format("2006-01-02 15:04:05"),
		appointment.EndTime.Format("2006-01-02 15:04:05"),
		appointment.Status)

	return utils.SendEmail(appointment.Customer.Email, subject, body)
}
