package repository

import (
	"context"

	"github.com/yukikurage/studio-pm-api/internal/database"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/utils"
	"gorm.io/gorm"
)

var clientSearchColumns = []string{
	"clients.name", "clients.contact", "clients.phone",
	"clients.street", "clients.city", "clients.state", "clients.zip",
}

// GormClientRepository is a GORM implementation of ClientRepository
type GormClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &GormClientRepository{db: db}
}

// Create creates a new client
func (r *GormClientRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// FindByID finds a client by ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uint64) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// Update updates a client
func (r *GormClientRepository) Update(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// Delete deletes a client
func (r *GormClientRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&models.Client{}, id).Error
}

// List searches, sorts and pages clients, attaching project counts
func (r *GormClientRepository) List(ctx context.Context, filter ListFilter) ([]ClientWithCount, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&models.Client{}).
			Scopes(database.Search(filter.Query, clientSearchColumns...))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []models.Client
	if err := base().
		Order(orderFor(clientSorts, "clients", filter.Sort)).
		Scopes(database.Paginate(utils.NewPaginationParams(filter.Page, filter.PageSize))).
		Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	counts, err := r.projectCounts(ctx, clients)
	if err != nil {
		return nil, 0, err
	}

	result := make([]ClientWithCount, len(clients))
	for i, c := range clients {
		result[i] = ClientWithCount{Client: c, ProjectCount: counts[c.ID]}
	}
	return result, total, nil
}

func (r *GormClientRepository) projectCounts(ctx context.Context, clients []models.Client) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(clients))
	if len(clients) == 0 {
		return counts, nil
	}

	ids := make([]uint64, len(clients))
	for i, c := range clients {
		ids[i] = c.ID
	}

	var rows []struct {
		ClientID uint64
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Select("client_id, COUNT(*) AS total").
		Where("client_id IN ?", ids).
		Group("client_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ClientID] = row.Total
	}
	return counts, nil
}

// ListAll lists every client ordered by name
func (r *GormClientRepository) ListAll(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// CountProjects counts projects that reference a client
func (r *GormClientRepository) CountProjects(ctx context.Context, clientID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	return count, err
}
