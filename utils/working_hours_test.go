package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thetahouse/thetahouse/db"
	"github.com/thetahouse/thetahouse/models"
)

func setupWorkingHoursDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Role{}, &models.User{}, &models.WorkingHours{}))

	prev := db.DB
	db.DB = gdb
	t.Cleanup(func() { db.DB = prev })
}

func TestCheckWorkingDayAndHours(t *testing.T) {
	setupWorkingHoursDB(t)

	practitioner := &models.User{Name: "Practitioner", Email: "p@thetahouse.test"}
	require.NoError(t, db.DB.Create(practitioner).Error)

	breakStart := "13:00"
	breakEnd := "14:00"
	require.NoError(t, db.DB.Create(&models.WorkingHours{
		PractitionerID: practitioner.ID,
		DayOfWeek:      models.Monday,
		StartTime:      "09:00",
		EndTime:        "17:00",
		IsWorkDay:      true,
		BreakStart:     &breakStart,
		BreakEnd:       &breakEnd,
	}).Error)

	monday := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, monday.Weekday())

	at := func(hour, min int) time.Time {
		return time.Date(monday.Year(), monday.Month(), monday.Day(), hour, min, 0, 0, time.UTC)
	}

	ok, err := CheckWorkingDayAndHours(practitioner.ID, at(10, 0))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckWorkingDayAndHours(practitioner.ID, at(8, 0))
	require.NoError(t, err)
	assert.False(t, ok, "before opening")

	ok, err = CheckWorkingDayAndHours(practitioner.ID, at(18, 0))
	require.NoError(t, err)
	assert.False(t, ok, "after closing")

	ok, err = CheckWorkingDayAndHours(practitioner.ID, at(13, 30))
	require.NoError(t, err)
	assert.False(t, ok, "during break")

	// Tuesday has no working hours configured for this practitioner
	tuesday := monday.AddDate(0, 0, 1).Add(10 * time.Hour)
	ok, err = CheckWorkingDayAndHours(practitioner.ID, tuesday)
	require.NoError(t, err)
	assert.False(t, ok, "non-working day")
}

func TestCheckWorkingDayAndHoursUnconfigured(t *testing.T) {
	setupWorkingHoursDB(t)

	practitioner := &models.User{Name: "Practitioner", Email: "p@thetahouse.test"}
	require.NoError(t, db.DB.Create(practitioner).Error)

	// No schedule on file means any slot is accepted
	ok, err := CheckWorkingDayAndHours(practitioner.ID, time.Date(2026, 9, 6, 3, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok)
}
