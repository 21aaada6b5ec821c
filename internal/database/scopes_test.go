package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/utils"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		Close(db)
	})
	return db
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "100!% done", EscapeLike("100% done"))
	assert.Equal(t, "a!_b", EscapeLike("a_b"))
	assert.Equal(t, "wow!!", EscapeLike("wow!"))
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Create(&models.Building{Name: "Wayne Manor", City: "Gotham"}).Error)
	require.NoError(t, db.Create(&models.Building{Name: "Stark Tower", City: "New York"}).Error)
	require.NoError(t, db.Create(&models.Building{Name: "100% Studio", City: "Queens"}).Error)

	var found []models.Building
	require.NoError(t, db.Scopes(Search("MANOR", "name", "city")).Find(&found).Error)
	require.Len(t, found, 1)
	assert.Equal(t, "Wayne Manor", found[0].Name)

	found = nil
	require.NoError(t, db.Scopes(Search("york", "name", "city")).Find(&found).Error)
	require.Len(t, found, 1)
	assert.Equal(t, "Stark Tower", found[0].Name)

	found = nil
	require.NoError(t, db.Scopes(Search("%", "name")).Find(&found).Error)
	require.Len(t, found, 1)
	assert.Equal(t, "100% Studio", found[0].Name)

	found = nil
	require.NoError(t, db.Scopes(Search("", "name")).Find(&found).Error)
	assert.Len(t, found, 3)
}

func TestPaginate_PastEndIsEmpty(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Client{Name: "Client"}).Error)
	}

	var page []models.Client
	require.NoError(t, db.Scopes(Paginate(utils.NewPaginationParams(2, 2))).Order("id").Find(&page).Error)
	assert.Len(t, page, 1)

	page = nil
	require.NoError(t, db.Scopes(Paginate(utils.NewPaginationParams(9, 2))).Order("id").Find(&page).Error)
	assert.Empty(t, page)
}

func TestInIDs_EmptyMatchesNothing(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.Client{Name: "Only"}).Error)

	var found []models.Client
	require.NoError(t, db.Scopes(InIDs("id", nil)).Find(&found).Error)
	assert.Empty(t, found)
}
