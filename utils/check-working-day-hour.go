package utils

import (
	"fmt"
	"time"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
)

// CheckWorkingDayAndHours checks the appointment against the practitioner's
// working days and hours, including break handling.
func CheckWorkingDayAndHours(practitionerID uint, appointmentStart time.Time) (bool, error) {
	var workingHours []models.WorkingHours
	if err := db.DB.Where("practitioner_id = ?", practitionerID).Find(&workingHours).Error; err != nil {
		return false, fmt.Errorf("practitioner working hours not found")
	}

	// Practitioners without a configured schedule are bookable any time
	if len(workingHours) == 0 {
		return true, nil
	}

	// Day of the week for the appointment (0 for Sunday ... 6 for Saturday)
	appointmentDay := int(appointmentStart.Weekday())

	var workingHoursForTheDay *models.WorkingHours
	for i, wh := range workingHours {
		if int(wh.DayOfWeek) == appointmentDay && wh.IsWorkDay {
			workingHoursForTheDay = &workingHours[i]
			break
		}
	}
	if workingHoursForTheDay == nil {
		return false, nil // Appointment is outside working days
	}

	layout := "15:04"
	startTime, err := time.Parse(layout, workingHoursForTheDay.StartTime)
	if err != nil {
		return false, fmt.Errorf("invalid start time format")
	}

	endTime, err := time.Parse(layout, workingHoursForTheDay.EndTime)
	if err != nil {
		return false, fmt.Errorf("invalid end time format")
	}

	// Compare clock time only
	appointmentClock, err := time.Parse(layout, appointmentStart.Format(layout))
	if err != nil {
		return false, fmt.Errorf("invalid appointment time")
	}

	if appointmentClock.Before(startTime) || appointmentClock.After(endTime) {
		return false, nil // Appointment is outside working hours
	}

	// Check for break periods if they exist
	if workingHoursForTheDay.BreakStart != nil && workingHoursForTheDay.BreakEnd != nil {
		breakStart, err := time.Parse(layout, *workingHoursForTheDay.BreakStart)
		if err != nil {
			return false, fmt.Errorf("invalid break start time format")
		}
		breakEnd, err := time.Parse(layout, *workingHoursForTheDay.BreakEnd)
		if err != nil {
			return false, fmt.Errorf("invalid break end time format")
		}

		if appointmentClock.After(breakStart) && appointmentClock.Before(breakEnd) {
			return false, nil // Appointment is within break time
		}
	}

	return true, nil
}
