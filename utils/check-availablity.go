package utils

import (
	"time"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
)

// CheckAvailability checks if a practitioner is available for a given time slot
func CheckAvailability(practitionerID uint, startTime time.Time, duration time.Duration) (bool, error) {
	endTime := startTime.Add(duration)

	// Check if any conflicting appointments exist and lock them
	var existingAppointment models.Appointment
	err := db.DB.Raw(`
		SELECT *
		FROM appointments
		WHERE practitioner_id = ? AND status NOT IN ('canceled', 'completed') AND (
			(start_time < ? AND end_time > ?) OR
			(start_time >= ? AND start_time < ?)
		) FOR UPDATE
		LIMIT 1
	`, practitionerID, endTime, startTime, startTime, endTime).
		Scan(&existingAppointment).Error

	// If there is any conflicting appointment, return false
	if err == nil && existingAppointment.ID != 0 {
		return false, nil
	}

	// No conflict, slot is available
	return true, nil
}
