package application

import (
	"testing"

	"github.com/fixtrack/fixtrack/internal/domain/assignment"
	"github.com/fixtrack/fixtrack/internal/domain/feedback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenantDashboard(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	manager := createTestUser(t, repos, "Upravnik Zgrade", "upravnik@example.com", "Upravnik")
	contractor := createTestUser(t, repos, "Izvođač Radova", "izvodjac@example.com", "Izvođač")

	createTestIssue(t, svc, repos, tenant.ID, "Otvorena prijava")
	a := assignTestIssue(t, svc, repos, tenant.ID, manager.ID, contractor.ID)
	_, err := svc.Assignment.UpdateAssignmentStatus(contractor.ID, a.ID, assignment.UpdateStatusDTO{
		Status: string(assignment.StatusDone),
	})
	require.NoError(t, err)

	d, err := svc.Dashboard.TenantDashboard(tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.TotalIssues)
	assert.Equal(t, int64(1), d.OpenIssues)
	assert.Equal(t, int64(0), d.InProgress)
	assert.Equal(t, int64(1), d.CompletedIssues)
	assert.Len(t, d.RecentIssues, 2)
}

func TestManagerDashboard(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	manager := createTestUser(t, repos, "Upravnik Zgrade", "upravnik@example.com", "Upravnik")
	contractor := createTestUser(t, repos, "Izvođač Radova", "izvodjac@example.com", "Izvođač")

	createTestIssue(t, svc, repos, tenant.ID, "Neraspoređena prijava")
	a := assignTestIssue(t, svc, repos, tenant.ID, manager.ID, contractor.ID)

	d, err := svc.Dashboard.ManagerDashboard()
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.TotalIssues)
	assert.Equal(t, int64(1), d.Unassigned)
	assert.Equal(t, int64(1), d.InProgress)
	assert.Equal(t, int64(0), d.CompletedIssues)
	assert.Zero(t, d.AvgRating)

	_, err = svc.Assignment.UpdateAssignmentStatus(contractor.ID, a.ID, assignment.UpdateStatusDTO{
		Status: string(assignment.StatusDone),
	})
	require.NoError(t, err)
	_, err = svc.Feedback.RateIssue(tenant.ID, a.IssueID, feedback.CreateRatingDTO{Score: 4})
	require.NoError(t, err)

	d, err = svc.Dashboard.ManagerDashboard()
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.CompletedIssues)
	assert.InDelta(t, 4.0, d.AvgRating, 0.001)
}

func TestContractorDashboard(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	manager := createTestUser(t, repos, "Upravnik Zgrade", "upravnik@example.com", "Upravnik")
	contractor := createTestUser(t, repos, "Izvođač Radova", "izvodjac@example.com", "Izvođač")

	first := assignTestIssue(t, svc, repos, tenant.ID, manager.ID, contractor.ID)
	_, err := svc.Assignment.UpdateAssignmentStatus(contractor.ID, first.ID, assignment.UpdateStatusDTO{
		Status: string(assignment.StatusDone),
	})
	require.NoError(t, err)
	assignTestIssue(t, svc, repos, tenant.ID, manager.ID, contractor.ID)

	d, err := svc.Dashboard.ContractorDashboard(contractor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.TotalAssignments)
	assert.Equal(t, int64(1), d.ActiveWork)
	assert.Equal(t, int64(1), d.CompletedWork)
	assert.Equal(t, int64(1), d.CompletedMonth)
}
