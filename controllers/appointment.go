package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
	"github.com/thetahouse/thetahouse/utils"
)

// GetAllAppointments returns all appointments
func GetAllAppointments(c *fiber.Ctx) error {
	var appointments []models.Appointment

	query := db.DB.Preload("Service").Preload("Practitioner").Preload("Customer")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("start_time").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment returns an appointment by ID
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Service").Preload("Practitioner").Preload("Customer").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CreateAppointment books an appointment after checking the practitioner's
// working hours and availability
func CreateAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := c.BodyParser(&appointment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if appointment.EndTime.Before(appointment.StartTime) || appointment.EndTime.Equal(appointment.StartTime) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid time slot",
			Error:   "end_time must be after start_time",
		})
	}

	withinHours, err := utils.CheckWorkingDayAndHours(appointment.PractitionerID, appointment.StartTime)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check working hours",
			Error:   err.Error(),
		})
	}
	if !withinHours {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Outside working hours",
			Error:   "the practitioner does not work at the requested time",
		})
	}

	available, err := utils.CheckAvailability(appointment.PractitionerID, appointment.StartTime, appointment.EndTime.Sub(appointment.StartTime))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check availability",
			Error:   err.Error(),
		})
	}
	if !available {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Time slot not available",
			Error:   "the practitioner already has an appointment in this slot",
		})
	}

	if err := db.DB.Create(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// UpdateAppointment updates an appointment by ID
func UpdateAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := c.BodyParser(&appointment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := db.DB.Model(&appointment).Where("id = ?", id).Updates(appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// UpdateAppointmentStatus moves an appointment through its state machine
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	type StatusInput struct {
		Status models.AppointmentStatus `json:"status" validate:"required"`
	}
	input := new(StatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := appointment.UpdateStatus(db.DB, input.Status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to update appointment status",
			Error:   err.Error(),
		})
	}

	return c.JSON(appointment)
}

// DeleteAppointment deletes an appointment by ID
func DeleteAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := db.DB.Where("id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete appointment",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
