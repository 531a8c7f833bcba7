package application

import (
	"strings"
	"testing"

	"github.com/fixtrack/fixtrack/internal/domain/assignment"
	"github.com/fixtrack/fixtrack/internal/domain/issue"
	"github.com/fixtrack/fixtrack/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------- CreateIssue ---------------------

func TestCreateIssue(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	categories, err := repos.Issue.ListCategories()
	require.NoError(t, err)

	created, err := svc.Issue.CreateIssue(t.Context(), tenant.ID, issue.CreateIssueDTO{
		Title:       "Curi slavina u kupatilu",
		Description: ptrString("Kaplje cijelu noć"),
		CategoryID:  categories[0].ID,
	}, []Upload{
		{Reader: strings.NewReader("prva"), Size: 4, Filename: "a.jpg", ContentType: "image/jpeg"},
		{Reader: strings.NewReader("druga"), Size: 5, Filename: "b.png", ContentType: "image/png"},
	})
	require.NoError(t, err)

	assert.Equal(t, issue.StatusReceived, created.Status)
	assert.Equal(t, tenant.ID, created.TenantID)
	require.Len(t, created.Images, 2)
	assert.Contains(t, created.Images[0].ImageURL, ".jpg")
	assert.Contains(t, created.Images[1].ImageURL, ".png")
}

func TestCreateIssueUnknownCategory(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	_, err := svc.Issue.CreateIssue(t.Context(), tenant.ID, issue.CreateIssueDTO{
		Title:      "Nešto ne radi",
		CategoryID: 9999,
	}, nil)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

// --------------------- listing ---------------------

func TestListTenantIssuesFilters(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	other := createTestUser(t, repos, "Lejla Begić", "lejla@example.com", "Stanar")

	createTestIssue(t, svc, repos, tenant.ID, "Curi slavina")
	second := createTestIssue(t, svc, repos, tenant.ID, "Ne radi bojler")
	createTestIssue(t, svc, repos, other.ID, "Tuđa prijava")

	all, err := svc.Issue.ListTenantIssues(tenant.ID, issue.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	search := "bojler"
	found, err := svc.Issue.ListTenantIssues(tenant.ID, issue.ListFilter{Search: &search})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Ne radi bojler", found[0].Title)

	require.NoError(t, svc.Issue.ChangeIssueStatus(tenant.ID, second.ID, string(issue.StatusCancelled)))
	cancelled := issue.StatusCancelled
	byStatus, err := svc.Issue.ListTenantIssues(tenant.ID, issue.ListFilter{Status: &cancelled})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, second.ID, byStatus[0].ID)

	titled, err := svc.Issue.ListTenantIssues(tenant.ID, issue.ListFilter{SortBy: "title", SortOrder: "asc"})
	require.NoError(t, err)
	require.Len(t, titled, 2)
	assert.Equal(t, "Curi slavina", titled[0].Title)
}

func TestListAllIssuesRequiresManager(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	manager := createTestUser(t, repos, "Upravnik Zgrade", "upravnik@example.com", "Upravnik")
	createTestIssue(t, svc, repos, tenant.ID, "Prijava")

	_, err := svc.Issue.ListAllIssues(tenant.ID, issue.ListFilter{})
	assert.ErrorIs(t, err, ErrForbidden)

	all, err := svc.Issue.ListAllIssues(manager.ID, issue.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// --------------------- UpdateIssue / DeleteIssue ---------------------

func TestUpdateIssueOnlyOwnerWhileReceived(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	other := createTestUser(t, repos, "Lejla Begić", "lejla@example.com", "Stanar")
	i := createTestIssue(t, svc, repos, tenant.ID, "Ne radi svjetlo")

	updated, err := svc.Issue.UpdateIssue(tenant.ID, i.ID, issue.UpdateIssueDTO{
		Title: ptrString("Ne radi svjetlo na drugom spratu"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ne radi svjetlo na drugom spratu", updated.Title)

	_, err = svc.Issue.UpdateIssue(other.ID, i.ID, issue.UpdateIssueDTO{Title: ptrString("tuđa")})
	assert.ErrorIs(t, err, ErrForbidden)

	// once the issue leaves Primljeno the tenant can no longer edit it
	manager := createTestUser(t, repos, "Upravnik Zgrade", "upravnik@example.com", "Upravnik")
	contractor := createTestUser(t, repos, "Izvođač Radova", "izvodjac@example.com", "Izvođač")
	_, err = svc.Issue.AssignContractor(manager.ID, i.ID, issue.AssignContractorDTO{ContractorID: contractor.ID})
	require.NoError(t, err)

	_, err = svc.Issue.UpdateIssue(tenant.ID, i.ID, issue.UpdateIssueDTO{Title: ptrString("kasno")})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteIssueRemovesChildren(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	i := createTestIssue(t, svc, repos, tenant.ID, "Pokvaren interfon")

	require.NoError(t, svc.Issue.DeleteIssue(tenant.ID, i.ID))

	_, err := svc.Issue.GetIssue(i.ID)
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestDeleteIssueNotOwner(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	other := createTestUser(t, repos, "Lejla Begić", "lejla@example.com", "Stanar")
	i := createTestIssue(t, svc, repos, tenant.ID, "Pokvaren interfon")

	assert.ErrorIs(t, svc.Issue.DeleteIssue(other.ID, i.ID), ErrForbidden)
}

// --------------------- status changes ---------------------

func TestChangeIssueStatusVocabulary(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	i := createTestIssue(t, svc, repos, tenant.ID, "Curi radijator")

	err := svc.Issue.ChangeIssueStatus(tenant.ID, i.ID, "Zavrseno ali pogresno")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// Primljeno cannot jump straight to Završeno
	err = svc.Issue.ChangeIssueStatus(tenant.ID, i.ID, string(issue.StatusDone))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestTenantCancelsOwnIssue(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	other := createTestUser(t, repos, "Lejla Begić", "lejla@example.com", "Stanar")
	i := createTestIssue(t, svc, repos, tenant.ID, "Curi radijator")

	err := svc.Issue.ChangeIssueStatus(other.ID, i.ID, string(issue.StatusCancelled))
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Issue.ChangeIssueStatus(tenant.ID, i.ID, string(issue.StatusCancelled)))

	got, err := svc.Issue.GetIssue(i.ID)
	require.NoError(t, err)
	assert.Equal(t, issue.StatusCancelled, got.Status)

	// the tenant gets a durable notification for the change
	rows, err := repos.Notification.ListNotificationsForUser(tenant.ID)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, string(issue.StatusCancelled), rows[0].NewStatus)
}

func TestManagerCancelRejectsActiveAssignment(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	manager := createTestUser(t, repos, "Upravnik Zgrade", "upravnik@example.com", "Upravnik")
	contractor := createTestUser(t, repos, "Izvođač Radova", "izvodjac@example.com", "Izvođač")
	i := createTestIssue(t, svc, repos, tenant.ID, "Ne radi lift")

	a, err := svc.Issue.AssignContractor(manager.ID, i.ID, issue.AssignContractorDTO{ContractorID: contractor.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Issue.ManagerChangeIssueStatus(manager.ID, i.ID, string(issue.StatusCancelled)))

	got, err := repos.Assignment.GetAssignmentByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusRejected, got.Status)

	events, err := repos.Notification.ListAssignmentNotificationsForContractor(contractor.ID)
	require.NoError(t, err)
	var cancelled bool
	for _, e := range events {
		if e.Type == notification.TypeAssignmentCancelled {
			cancelled = true
		}
	}
	assert.True(t, cancelled)
}

func TestManagerChangeStatusRequiresManager(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	i := createTestIssue(t, svc, repos, tenant.ID, "Ne radi lift")

	err := svc.Issue.ManagerChangeIssueStatus(tenant.ID, i.ID, string(issue.StatusCancelled))
	assert.ErrorIs(t, err, ErrForbidden)
}

// --------------------- AssignContractor ---------------------

func TestAssignContractor(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	manager := createTestUser(t, repos, "Upravnik Zgrade", "upravnik@example.com", "Upravnik")
	contractor := createTestUser(t, repos, "Izvođač Radova", "izvodjac@example.com", "Izvođač")
	i := createTestIssue(t, svc, repos, tenant.ID, "Pukla cijev")

	a, err := svc.Issue.AssignContractor(manager.ID, i.ID, issue.AssignContractorDTO{
		ContractorID: contractor.ID,
		Message:      ptrString("Hitno, stan 12"),
	})
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusAssigned, a.Status)

	got, err := svc.Issue.GetIssue(i.ID)
	require.NoError(t, err)
	assert.Equal(t, issue.StatusAssigned, got.Status)

	tenantRows, err := repos.Notification.ListNotificationsForUser(tenant.ID)
	require.NoError(t, err)
	require.Len(t, tenantRows, 1)
	assert.Equal(t, string(issue.StatusAssigned), tenantRows[0].NewStatus)

	contractorRows, err := repos.Notification.ListAssignmentNotificationsForContractor(contractor.ID)
	require.NoError(t, err)
	require.Len(t, contractorRows, 1)
	assert.Equal(t, notification.TypeNewAssignment, contractorRows[0].Type)
	require.NotNil(t, contractorRows[0].Message)
	assert.Equal(t, "Hitno, stan 12", *contractorRows[0].Message)
}

func TestAssignContractorPreconditions(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	manager := createTestUser(t, repos, "Upravnik Zgrade", "upravnik@example.com", "Upravnik")
	contractor := createTestUser(t, repos, "Izvođač Radova", "izvodjac@example.com", "Izvođač")
	second := createTestUser(t, repos, "Drugi Izvođač", "drugi@example.com", "Izvođač")
	i := createTestIssue(t, svc, repos, tenant.ID, "Pukla cijev")

	// only managers and admins assign
	_, err := svc.Issue.AssignContractor(tenant.ID, i.ID, issue.AssignContractorDTO{ContractorID: contractor.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	// the assignee must actually hold the contractor role
	_, err = svc.Issue.AssignContractor(manager.ID, i.ID, issue.AssignContractorDTO{ContractorID: tenant.ID})
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.Issue.AssignContractor(manager.ID, i.ID, issue.AssignContractorDTO{ContractorID: contractor.ID})
	require.NoError(t, err)

	// a second active assignment on the same issue is refused
	_, err = svc.Issue.AssignContractor(manager.ID, i.ID, issue.AssignContractorDTO{ContractorID: second.ID})
	assert.ErrorIs(t, err, ErrDuplicateAssignment)
}

// --------------------- GetIssueFor ---------------------

func TestGetIssueForAccess(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	other := createTestUser(t, repos, "Lejla Begić", "lejla@example.com", "Stanar")
	manager := createTestUser(t, repos, "Upravnik Zgrade", "upravnik@example.com", "Upravnik")
	contractor := createTestUser(t, repos, "Izvođač Radova", "izvodjac@example.com", "Izvođač")
	outsider := createTestUser(t, repos, "Treći Izvođač", "treci@example.com", "Izvođač")
	i := createTestIssue(t, svc, repos, tenant.ID, "Pokvarena brava")

	_, err := svc.Issue.GetIssueFor(tenant.ID, i.ID)
	assert.NoError(t, err)
	_, err = svc.Issue.GetIssueFor(manager.ID, i.ID)
	assert.NoError(t, err)
	_, err = svc.Issue.GetIssueFor(other.ID, i.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Issue.AssignContractor(manager.ID, i.ID, issue.AssignContractorDTO{ContractorID: contractor.ID})
	require.NoError(t, err)

	_, err = svc.Issue.GetIssueFor(contractor.ID, i.ID)
	assert.NoError(t, err)
	_, err = svc.Issue.GetIssueFor(outsider.ID, i.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
