package application

import (
	"testing"
	"time"

	"github.com/fixtrack/fixtrack/internal/api/middleware"
	"github.com/fixtrack/fixtrack/internal/domain/admin"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --------------------- Register ---------------------

func TestRegister(t *testing.T) {
	svc, _ := newTestServices(t)

	u, err := svc.User.Register(user.RegisterDTO{
		FullName: "Amir Hodžić",
		Email:    "amir@example.com",
		Password: "lozinka123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Stanar", u.Role.Name)
	assert.Equal(t, user.RoleTenant, u.Role.Tag())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("lozinka123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repos := newTestServices(t)
	createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	_, err := svc.User.Register(user.RegisterDTO{
		FullName: "Drugi Amir",
		Email:    "amir@example.com",
		Password: "lozinka123",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterClosed(t *testing.T) {
	svc, _ := newTestServices(t)

	off := false
	_, err := svc.Admin.UpdateSettings(admin.UpdateSettingsDTO{AllowRegistration: &off})
	require.NoError(t, err)

	_, err = svc.User.Register(user.RegisterDTO{
		FullName: "Amir Hodžić",
		Email:    "amir@example.com",
		Password: "lozinka123",
	})
	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

// --------------------- Login ---------------------

func TestLogin(t *testing.T) {
	svc, repos := newTestServices(t)
	u := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	oldGen := middleware.GenerateToken
	middleware.GenerateToken = func(userID uint, email, role string, expire time.Duration) (string, error) {
		assert.Equal(t, u.ID, userID)
		assert.Equal(t, "amir@example.com", email)
		assert.Equal(t, "Stanar", role)
		return "test-token", nil
	}
	defer func() { middleware.GenerateToken = oldGen }()

	resp, err := svc.User.Login(user.LoginDTO{Email: "amir@example.com", Password: "lozinka123"})
	require.NoError(t, err)
	assert.Equal(t, "test-token", resp.Token)
	assert.Equal(t, u.ID, resp.UID)
	assert.Equal(t, "Stanar", resp.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repos := newTestServices(t)
	createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	_, err := svc.User.Login(user.LoginDTO{Email: "amir@example.com", Password: "pogresna"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.User.Login(user.LoginDTO{Email: "nepostojeci@example.com", Password: "lozinka123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// --------------------- profile ---------------------

func TestUpdateProfile(t *testing.T) {
	svc, repos := newTestServices(t)
	u := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	updated, err := svc.User.UpdateProfile(u.ID, user.UpdateUserDTO{
		FullName: ptrString("Amir H."),
		Phone:    ptrString("061-123-456"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Amir H.", updated.FullName)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "061-123-456", *updated.Phone)
}

func TestUpdateProfileCannotChangeRole(t *testing.T) {
	svc, repos := newTestServices(t)
	u := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	adminRole, err := repos.User.GetRoleByName("Administrator")
	require.NoError(t, err)

	_, err = svc.User.UpdateProfile(u.ID, user.UpdateUserDTO{RoleID: &adminRole.ID})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	svc, repos := newTestServices(t)
	u := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	createTestUser(t, repos, "Lejla Begić", "lejla@example.com", "Stanar")

	_, err := svc.User.UpdateProfile(u.ID, user.UpdateUserDTO{Email: ptrString("lejla@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestChangePassword(t *testing.T) {
	svc, repos := newTestServices(t)
	u := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	err := svc.User.ChangePassword(u.ID, user.ChangePasswordDTO{
		OldPassword: "kriva",
		NewPassword: "novalozinka1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.User.ChangePassword(u.ID, user.ChangePasswordDTO{
		OldPassword: "lozinka123",
		NewPassword: "novalozinka1",
	}))

	reloaded, err := repos.User.GetUserByID(u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.PasswordHash), []byte("novalozinka1")))
}

// --------------------- ListContractors ---------------------

func TestListContractors(t *testing.T) {
	svc, repos := newTestServices(t)
	createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	createTestUser(t, repos, "Izvođač Radova", "izvodjac@example.com", "Izvođač")
	createTestUser(t, repos, "Drugi Izvođač", "drugi@example.com", "Izvođač")

	contractors, err := svc.User.ListContractors()
	require.NoError(t, err)
	require.Len(t, contractors, 2)
	for _, c := range contractors {
		assert.Equal(t, "Izvođač", c.RoleName)
	}
}
