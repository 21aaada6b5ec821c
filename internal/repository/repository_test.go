package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yukikurage/studio-pm-api/internal/authz"
	"github.com/yukikurage/studio-pm-api/internal/models"
	"github.com/yukikurage/studio-pm-api/internal/testutil"
)

func TestUserFindByLogin(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := models.User{Email: "jane@studio.test", Name: "Jane Doe", PasswordHash: "x", Role: models.RoleEmployee}
	require.NoError(t, repo.Create(ctx, &user))

	byEmail, err := repo.FindByLogin(ctx, "  JANE@studio.test ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byName, err := repo.FindByLogin(ctx, "jane doe")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = repo.FindByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClientList_ProjectCountsAndSort(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	gotham := models.Client{Name: "Bruce Wayne", City: "Gotham", State: "NJ"}
	malibu := models.Client{Name: "Tony Stark", City: "Malibu", State: "CA"}
	require.NoError(t, repo.Create(ctx, &gotham))
	require.NoError(t, repo.Create(ctx, &malibu))
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Project{Name: "P", ClientID: &gotham.ID, Status: models.ProjectStatusPlanned}).Error)
	}

	clients, total, err := repo.List(ctx, ListFilter{Sort: "state", Page: 1, PageSize: 25})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, clients, 2)
	assert.Equal(t, "Tony Stark", clients[0].Name)
	assert.Equal(t, int64(0), clients[0].ProjectCount)
	assert.Equal(t, int64(2), clients[1].ProjectCount)

	clients, total, err = repo.List(ctx, ListFilter{Query: "GOTH", Sort: "name", Page: 1, PageSize: 25})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, clients, 1)
	assert.Equal(t, gotham.ID, clients[0].ID)

	count, err := repo.CountProjects(ctx, gotham.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestNotificationInbox(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	me, other := uint64(1), uint64(2)
	now := time.Now()
	items := []models.Notification{
		{SenderID: other, Message: "broadcast", CreatedAt: now.Add(-3 * time.Minute)},
		{SenderID: other, RecipientID: &me, Message: "to me", CreatedAt: now.Add(-2 * time.Minute)},
		{SenderID: me, RecipientID: &other, Message: "to other", CreatedAt: now.Add(-time.Minute)},
	}
	for i := range items {
		require.NoError(t, repo.Create(ctx, &items[i]))
	}

	inbox, err := repo.ListInbox(ctx, me)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "to me", inbox[0].Message)
	assert.Equal(t, "broadcast", inbox[1].Message)

	unread, err := repo.CountUnread(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	affected, err := repo.MarkAllRead(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	affected, err = repo.MarkAllRead(ctx, me)
	require.NoError(t, err)
	assert.Zero(t, affected)

	otherUnread, err := repo.CountUnread(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherUnread)
}

func TestEventList_ScopeAndWindow(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	a := models.Project{Name: "A", Status: models.ProjectStatusPlanned}
	b := models.Project{Name: "B", Status: models.ProjectStatusPlanned}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	now := time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)
	events := []models.Event{
		{Title: "past A", ProjectID: &a.ID, Start: now.Add(-48 * time.Hour), Status: models.EventStatusCompleted},
		{Title: "future A", ProjectID: &a.ID, Start: now.Add(24 * time.Hour), Status: models.EventStatusUpcoming},
		{Title: "future B", ProjectID: &b.ID, Start: now.Add(2 * time.Hour), Status: models.EventStatusUpcoming},
		{Title: "unlinked", Start: now.Add(time.Hour), Status: models.EventStatusUpcoming},
	}
	for i := range events {
		require.NoError(t, repo.Create(ctx, &events[i]))
	}

	all, err := repo.List(ctx, EventFilter{Scope: authz.Scope{All: true}})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	scoped, err := repo.List(ctx, EventFilter{Scope: authz.Scope{ProjectIDs: []uint64{a.ID}}})
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	assert.Equal(t, "future A", scoped[0].Title)

	upcoming, err := repo.List(ctx, EventFilter{Scope: authz.Scope{All: true}, StartsAfter: &now, Ascending: true, Limit: 2})
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "unlinked", upcoming[0].Title)
	assert.Equal(t, "future B", upcoming[1].Title)

	none, err := repo.List(ctx, EventFilter{Scope: authz.Scope{ProjectIDs: []uint64{}}})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAssignmentUniquePair(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.ProjectAssignment{ProjectID: 1, UserID: 2}))
	assert.Error(t, repo.Create(ctx, &models.ProjectAssignment{ProjectID: 1, UserID: 2}))

	ids, err := repo.ProjectIDsForUser(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, ids)
}
