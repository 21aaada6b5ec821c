package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/studio-pm-api/internal/models"
)

func TestSeedDemo_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SeedDemo(db))
	require.NoError(t, SeedDemo(db))

	var users, projects, events int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Project{}).Count(&projects).Error)
	require.NoError(t, db.Model(&models.Event{}).Count(&events).Error)

	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(3), projects)
	assert.Equal(t, int64(3), events)

	var demo models.User
	require.NoError(t, db.Where("email = ?", DemoEmail).First(&demo).Error)
	assert.Equal(t, models.RoleEmployee, demo.Role)
}

func TestReset_EmptiesTables(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedDemo(db))

	require.NoError(t, Reset(db))

	var count int64
	require.NoError(t, db.Model(&models.Client{}).Count(&count).Error)
	assert.Zero(t, count)
}
