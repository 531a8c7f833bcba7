package application

import (
	"strings"
	"testing"

	"github.com/fixtrack/fixtrack/internal/domain/admin"
	"github.com/fixtrack/fixtrack/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------- user directory ---------------------

func TestAdminCreateUser(t *testing.T) {
	svc, repos := newTestServices(t)

	role, err := repos.User.GetRoleByName("Izvođač")
	require.NoError(t, err)

	u, err := svc.Admin.CreateUser(user.AdminCreateUserDTO{
		FullName: "Novi Izvođač",
		Email:    "novi@example.com",
		Password: "lozinka123",
		RoleID:   role.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, role.ID, u.RoleID)

	_, err = svc.Admin.CreateUser(user.AdminCreateUserDTO{
		FullName: "Duplikat",
		Email:    "novi@example.com",
		Password: "lozinka123",
		RoleID:   role.ID,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAdminDeleteUserSelf(t *testing.T) {
	svc, repos := newTestServices(t)
	adm := createTestUser(t, repos, "Administrator Sistema", "admin@example.com", "Administrator")
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	assert.ErrorIs(t, svc.Admin.DeleteUser(adm.ID, adm.ID), ErrSelfDelete)
	assert.NoError(t, svc.Admin.DeleteUser(adm.ID, tenant.ID))
}

func TestAdminUserStats(t *testing.T) {
	svc, repos := newTestServices(t)
	createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	createTestUser(t, repos, "Lejla Begić", "lejla@example.com", "Stanar")
	createTestUser(t, repos, "Izvođač Radova", "izvodjac@example.com", "Izvođač")

	stats, err := svc.Admin.GetUserStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.UsersByRole["Stanar"])
	assert.Equal(t, int64(1), stats.UsersByRole["Izvođač"])
	assert.Equal(t, int64(3), stats.RecentRegistrations)
}

// --------------------- roles ---------------------

func TestRoleLifecycle(t *testing.T) {
	svc, repos := newTestServices(t)
	adm := createTestUser(t, repos, "Administrator Sistema", "admin@example.com", "Administrator")

	created, err := svc.Admin.CreateRole(user.CreateRoleDTO{Name: "Domar"})
	require.NoError(t, err)

	_, err = svc.Admin.CreateRole(user.CreateRoleDTO{Name: "Domar"})
	assert.ErrorIs(t, err, ErrRoleNameTaken)

	renamed, err := svc.Admin.UpdateRole(created.ID, user.UpdateRoleDTO{Name: ptrString("Kućepazitelj")})
	require.NoError(t, err)
	assert.Equal(t, "Kućepazitelj", renamed.Name)

	assert.NoError(t, svc.Admin.DeleteRole(adm.ID, created.ID))
}

func TestDeleteRoleGuards(t *testing.T) {
	svc, repos := newTestServices(t)
	adm := createTestUser(t, repos, "Administrator Sistema", "admin@example.com", "Administrator")
	createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	tenantRole, err := repos.User.GetRoleByName("Stanar")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Admin.DeleteRole(adm.ID, tenantRole.ID), ErrRoleInUse)

	assert.ErrorIs(t, svc.Admin.DeleteRole(adm.ID, adm.RoleID), ErrSelfRoleDelete)
}

// --------------------- role applications ---------------------

func TestContractorApplicationFlow(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	rr, err := svc.Admin.ApplyForContractor(t.Context(), tenant.ID, admin.ContractorApplicationDTO{
		MotivationLetter: "Dugogodišnje iskustvo u vodoinstalaterskim radovima.",
		Reason:           "Želim raditi na održavanju zgrade.",
	}, &Upload{Reader: strings.NewReader("cv"), Size: 2, Filename: "cv.pdf", ContentType: "application/pdf"})
	require.NoError(t, err)
	assert.Equal(t, admin.RequestPending, rr.Status)
	assert.NotNil(t, rr.AttachmentURL)

	// one application in flight at a time
	_, err = svc.Admin.ApplyForManager(t.Context(), tenant.ID, admin.ManagerApplicationDTO{
		MotivationLetter:     "a",
		ManagementExperience: "b",
		BuildingPlans:        "c",
	})
	assert.ErrorIs(t, err, ErrPendingApplication)

	status, err := svc.Admin.GetApplicationStatus(tenant.ID)
	require.NoError(t, err)
	assert.True(t, status.HasPendingApplication)

	approved, err := svc.Admin.ApproveRoleRequest(rr.ID, admin.ResolveRequestDTO{
		AdminNotes: ptrString("Reference provjerene"),
	})
	require.NoError(t, err)
	assert.Equal(t, admin.RequestApproved, approved.Status)

	reloaded, err := repos.User.GetUserByID(tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, user.RoleContractor, reloaded.Role.Tag())

	// the request is closed; resolving twice is refused
	_, err = svc.Admin.ApproveRoleRequest(rr.ID, admin.ResolveRequestDTO{})
	assert.ErrorIs(t, err, ErrRequestResolved)
}

func TestApplyForRoleAlreadyHeld(t *testing.T) {
	svc, repos := newTestServices(t)
	contractor := createTestUser(t, repos, "Izvođač Radova", "izvodjac@example.com", "Izvođač")

	_, err := svc.Admin.ApplyForContractor(t.Context(), contractor.ID, admin.ContractorApplicationDTO{
		MotivationLetter: "a",
		Reason:           "b",
	}, nil)
	assert.ErrorIs(t, err, ErrAlreadyInRole)
}

func TestRejectRoleRequest(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	rr, err := svc.Admin.ApplyForManager(t.Context(), tenant.ID, admin.ManagerApplicationDTO{
		MotivationLetter:     "a",
		ManagementExperience: "b",
		BuildingPlans:        "c",
	})
	require.NoError(t, err)

	rejected, err := svc.Admin.RejectRoleRequest(rr.ID, admin.ResolveRequestDTO{
		AdminNotes: ptrString("Nedovoljno iskustva"),
	})
	require.NoError(t, err)
	assert.Equal(t, admin.RequestRejected, rejected.Status)

	// the role stays untouched and a new application may be filed
	reloaded, err := repos.User.GetUserByID(tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, user.RoleTenant, reloaded.Role.Tag())

	_, err = svc.Admin.ApplyForManager(t.Context(), tenant.ID, admin.ManagerApplicationDTO{
		MotivationLetter:     "a",
		ManagementExperience: "b",
		BuildingPlans:        "c",
	})
	assert.NoError(t, err)
}

// --------------------- notes and settings ---------------------

func TestAdminNotes(t *testing.T) {
	svc, repos := newTestServices(t)
	adm := createTestUser(t, repos, "Administrator Sistema", "admin@example.com", "Administrator")
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	_, err := svc.Admin.CreateNote(adm.ID, admin.CreateNoteDTO{TenantID: tenant.ID, Note: "Kasni sa režijama"})
	require.NoError(t, err)

	_, err = svc.Admin.CreateNote(adm.ID, admin.CreateNoteDTO{TenantID: 9999, Note: "nema ga"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	notes, err := svc.Admin.ListNotesForTenant(tenant.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Kasni sa režijama", notes[0].Note)
}

func TestUpdateSettingsMergesFields(t *testing.T) {
	svc, _ := newTestServices(t)

	off := false
	on := true
	updated, err := svc.Admin.UpdateSettings(admin.UpdateSettingsDTO{
		AllowRegistration: &off,
		MaintenanceMode:   &on,
	})
	require.NoError(t, err)
	assert.False(t, updated.AllowRegistration)
	assert.True(t, updated.MaintenanceMode)
	// untouched fields keep their defaults
	assert.True(t, updated.RequireApproval)

	got, err := svc.Admin.GetSettings()
	require.NoError(t, err)
	assert.False(t, got.AllowRegistration)
}
