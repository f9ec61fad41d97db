package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

type Recurrence struct {
	gorm.Model
	AppointmentID uint      `json:"appointment_id"`
	NextRun       time.Time `json:"next_run"`
	Frequency     string    `json:"frequency"` // "daily", "weekly", "monthly"
	EndAfter      uint      `json:"end_after"` // Number of occurrences
}

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusCompleted AppointmentStatus = "completed"
)

type Appointment struct {
	gorm.Model
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	StartTime      time.Time         `json:"start_time"`
	EndTime        time.Time         `json:"end_time"`
	Status         AppointmentStatus `json:"status"`
	IsRecurring    bool              `json:"is_recurring"`
	RecurrenceID   uint              `json:"recur_pattern_id"`
	RecurPattern   Recurrence        `json:"recur_pattern"`
	ServiceID      uint              `json:"service_id"`
	Service        Service           `json:"service" gorm:"foreignKey:ServiceID"`
	PractitionerID uint              `json:"practitioner_id"`
	Practitioner   User              `json:"practitioner" gorm:"foreignKey:PractitionerID"`
	CustomerID     uint              `json:"customer_id"`
	Customer       Customer          `json:"customer" gorm:"foreignKey:CustomerID"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// UpdateStatus enforces the appointment state machine, persists the change and
// schedules the next occurrence for recurring appointments.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusPending:
		if newStatus != StatusConfirmed && newStatus != StatusCanceled {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case StatusConfirmed:
		if newStatus != StatusCompleted && newStatus != StatusCanceled {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case StatusCompleted, StatusCanceled:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	}

	a.Status = newStatus
	if err := tx.Save(a).Error; err != nil {
		return err
	}

	if newStatus == StatusCompleted && a.IsRecurring {
		if err := tx.Preload("RecurPattern").First(a, a.ID).Error; err != nil {
			return fmt.Errorf("failed to load recurrence pattern: %v", err)
		}
		return a.ScheduleNextRecurrence(tx)
	}

	return nil
}

func (a *Appointment) ScheduleNextRecurrence(tx *gorm.DB) error {
	var nextTime time.Time

	if a.RecurPattern.ID == 0 {
		return fmt.Errorf("no recurrence pattern found for appointment")
	}

	switch a.RecurPattern.Frequency {
	case "daily":
		nextTime = a.StartTime.AddDate(0, 0, 1)
	case "weekly":
		nextTime = a.StartTime.AddDate(0, 0, 7)
	case "monthly":
		nextTime = a.StartTime.AddDate(0, 1, 0)
	default:
		return fmt.Errorf("invalid recurrence frequency: %s", a.RecurPattern.Frequency)
	}

	// Decrement remaining occurrences if EndAfter > 0
	if a.RecurPattern.EndAfter > 0 {
		a.RecurPattern.EndAfter--
		if a.RecurPattern.EndAfter == 0 {
			return nil // Stop recurrence if occurrences are exhausted
		}
		if err := tx.Save(&a.RecurPattern).Error; err != nil {
			return fmt.Errorf("failed to update recurrence: %v", err)
		}
	}

	nextAppointment := Appointment{
		Title:          a.Title,
		Description:    a.Description,
		StartTime:      nextTime,
		EndTime:        nextTime.Add(a.EndTime.Sub(a.StartTime)),
		Status:         StatusPending,
		IsRecurring:    true,
		RecurrenceID:   a.RecurPattern.ID,
		ServiceID:      a.ServiceID,
		PractitionerID: a.PractitionerID,
		CustomerID:     a.CustomerID,
	}

	if err := tx.Create(&nextAppointment).Error; err != nil {
		return fmt.Errorf("failed to create next recurrence: %v", err)
	}

	return nil
}
