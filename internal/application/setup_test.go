package application

import (
	"context"
	"io"
	"testing"

	"github.com/fixtrack/fixtrack/internal/domain/admin"
	"github.com/fixtrack/fixtrack/internal/domain/assignment"
	"github.com/fixtrack/fixtrack/internal/domain/audit"
	"github.com/fixtrack/fixtrack/internal/domain/feedback"
	"github.com/fixtrack/fixtrack/internal/domain/issue"
	"github.com/fixtrack/fixtrack/internal/domain/notification"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"github.com/fixtrack/fixtrack/internal/repository"
	"github.com/fixtrack/fixtrack/pkg/storage/mock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestRepos opens an in-memory sqlite database with the full schema and
// baseline roles/categories, mirroring what Seed does at startup.
func setupTestRepos(t *testing.T) *repository.Repos {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&user.Role{},
		&user.User{},
		&issue.Category{},
		&issue.Issue{},
		&issue.Image{},
		&assignment.Assignment{},
		&assignment.Image{},
		&assignment.Document{},
		&notification.Notification{},
		&notification.AssignmentNotification{},
		&feedback.Comment{},
		&feedback.Rating{},
		&feedback.Survey{},
		&admin.Note{},
		&admin.RoleRequest{},
		&admin.SystemSettings{},
		&audit.AuditLog{},
	))

	for _, name := range []string{"Stanar", "Upravnik", "Izvođač", "Administrator"} {
		require.NoError(t, db.Create(&user.Role{Name: name}).Error)
	}
	for _, name := range []string{"Vodoinstalacije", "Elektroinstalacije", "Ostalo"} {
		require.NoError(t, db.Create(&issue.Category{Name: name}).Error)
	}

	return repository.NewRepositories(db)
}

// newMockStore returns a storage mock that accepts any upload and hands back
// a deterministic URL.
func newMockStore(t *testing.T) *mock.MockStore {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	store := mock.NewMockStore(ctrl)
	store.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ io.Reader, _ int64, objectName, _ string) (string, error) {
			return "http://store.local/fixtrack/" + objectName, nil
		}).
		AnyTimes()
	store.EXPECT().Remove(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return store
}

func newTestServices(t *testing.T) (*Services, *repository.Repos) {
	t.Helper()
	repos := setupTestRepos(t)
	return New(repos, newMockStore(t)), repos
}

func createTestUser(t *testing.T, repos *repository.Repos, fullName, email, roleName string) user.User {
	t.Helper()

	role, err := repos.User.GetRoleByName(roleName)
	require.NoError(t, err)

	hashed, err := bcrypt.GenerateFromPassword([]byte("lozinka123"), bcrypt.MinCost)
	require.NoError(t, err)

	u := user.User{
		RoleID:       role.ID,
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hashed),
	}
	require.NoError(t, repos.User.CreateUser(&u))
	u.Role = role
	return u
}

func createTestIssue(t *testing.T, svc *Services, repos *repository.Repos, tenantID uint, title string) *issue.Issue {
	t.Helper()

	categories, err := repos.Issue.ListCategories()
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	i, err := svc.Issue.CreateIssue(t.Context(), tenantID, issue.CreateIssueDTO{
		Title:      title,
		CategoryID: categories[0].ID,
	}, nil)
	require.NoError(t, err)
	return i
}

func ptrString(s string) *string { return &s }
