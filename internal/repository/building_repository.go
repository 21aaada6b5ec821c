package repository

import (
	"context"

	"github.com/yukikurage/studio-pm-api/internal/database"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/utils"
	"gorm.io/gorm"
)

var buildingSearchColumns = []string{"buildings.name", "buildings.street", "buildings.city", "buildings.state", "buildings.zip"}

// GormBuildingRepository is a GORM implementation of BuildingRepository
type GormBuildingRepository struct {
	db *gorm.DB
}

// NewBuildingRepository creates a new BuildingRepository
func NewBuildingRepository(db *gorm.DB) BuildingRepository {
	return &GormBuildingRepository{db: db}
}

func (r *GormBuildingRepository) Create(ctx context.Context, building *models.Building) error {
	return r.db.WithContext(ctx).Create(building).Error
}

func (r *GormBuildingRepository) FindByID(ctx context.Context, id uint64) (*models.Building, error) {
	var building models.Building
	if err := r.db.WithContext(ctx).First(&building, id).Error; err != nil {
		return nil, err
	}
	return &building, nil
}

func (r *GormBuildingRepository) Update(ctx context.Context, building *models.Building) error {
	return r.db.WithContext(ctx).Save(building).Error
}

func (r *GormBuildingRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Building{}, id).Error
}

// List searches, sorts and pages buildings
func (r *GormBuildingRepository) List(ctx context.Context, filter ListFilter) ([]models.Building, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.Building{}).
			Scopes(database.Search(filter.Query, buildingSearchColumns...))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var buildings []models.Building
	if err := base().
		Order(orderFor(buildingSorts, "buildings", filter.Sort)).
		Scopes(database.Paginate(utils.NewPaginationParams(filter.Page, filter.PageSize))).
		Find(&buildings).Error; err != nil {
		return nil, 0, err
	}

	return buildings, total, nil
}

func (r *GormBuildingRepository) ListAll(ctx context.Context) ([]models.Building, error) {
	var buildings []models.Building
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&buildings).Error; err != nil {
		return nil, err
	}
	return buildings, nil
}

// CountProjects counts projects located in a building
func (r *GormBuildingRepository) CountProjects(ctx context.Context, buildingID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("building_id = ?", buildingID).
		Count(&count).Error
	return count, err
}
