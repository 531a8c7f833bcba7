package application

import (
	"testing"

	"github.com/fixtrack/fixtrack/internal/domain/assignment"
	"github.com/fixtrack/fixtrack/internal/domain/feedback"
	"github.com/fixtrack/fixtrack/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeTestIssue runs an issue through assignment to Završeno and returns
// its id.
func completeTestIssue(t *testing.T, svc *Services, repos *repository.Repos, tenantID, managerID, contractorID uint) uint {
	t.Helper()
	a := assignTestIssue(t, svc, repos, tenantID, managerID, contractorID)
	_, err := svc.Assignment.UpdateAssignmentStatus(contractorID, a.ID, assignment.UpdateStatusDTO{
		Status: string(assignment.StatusDone),
	})
	require.NoError(t, err)
	return a.IssueID
}

// --------------------- comments ---------------------

func TestCommentsFollowIssueAccess(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	other := createTestUser(t, repos, "Lejla Begić", "lejla@example.com", "Stanar")
	manager := createTestUser(t, repos, "Upravnik Zgrade", "upravnik@example.com", "Upravnik")
	i := createTestIssue(t, svc, repos, tenant.ID, "Začepljen odvod")

	_, err := svc.Feedback.AddComment(tenant.ID, i.ID, feedback.CreateCommentDTO{Content: "Voda se skuplja u podrumu"})
	require.NoError(t, err)
	_, err = svc.Feedback.AddComment(manager.ID, i.ID, feedback.CreateCommentDTO{Content: "Izvođač dolazi sutra"})
	require.NoError(t, err)

	_, err = svc.Feedback.AddComment(other.ID, i.ID, feedback.CreateCommentDTO{Content: "tuđi problem"})
	assert.ErrorIs(t, err, ErrForbidden)

	comments, err := svc.Feedback.ListComments(tenant.ID, i.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	names := []string{comments[0].UserName, comments[1].UserName}
	assert.Contains(t, names, "Amir Hodžić")
	assert.Contains(t, names, "Upravnik Zgrade")

	_, err = svc.Feedback.ListComments(other.ID, i.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

// --------------------- ratings ---------------------

func TestRateIssueOnlyWhenDone(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	i := createTestIssue(t, svc, repos, tenant.ID, "Pokvarena rasvjeta")

	_, err := svc.Feedback.RateIssue(tenant.ID, i.ID, feedback.CreateRatingDTO{Score: 5})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRateIssueUpsert(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	other := createTestUser(t, repos, "Lejla Begić", "lejla@example.com", "Stanar")
	manager := createTestUser(t, repos, "Upravnik Zgrade", "upravnik@example.com", "Upravnik")
	contractor := createTestUser(t, repos, "Izvođač Radova", "izvodjac@example.com", "Izvođač")
	issueID := completeTestIssue(t, svc, repos, tenant.ID, manager.ID, contractor.ID)

	_, err := svc.Feedback.RateIssue(other.ID, issueID, feedback.CreateRatingDTO{Score: 1})
	assert.ErrorIs(t, err, ErrForbidden)

	first, err := svc.Feedback.RateIssue(tenant.ID, issueID, feedback.CreateRatingDTO{
		Score:   3,
		Comment: ptrString("Moglo je brže"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Score)

	second, err := svc.Feedback.RateIssue(tenant.ID, issueID, feedback.CreateRatingDTO{Score: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, second.Score)

	got, err := svc.Feedback.GetRating(tenant.ID, issueID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Score)
}

func TestGetRatingMissing(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")

	_, err := svc.Feedback.GetRating(tenant.ID, 42)
	assert.ErrorIs(t, err, ErrRatingNotFound)
}

// --------------------- surveys ---------------------

func TestSubmitSurvey(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	other := createTestUser(t, repos, "Lejla Begić", "lejla@example.com", "Stanar")
	i := createTestIssue(t, svc, repos, tenant.ID, "Buka iz kotlovnice")

	sv, err := svc.Feedback.SubmitSurvey(tenant.ID, feedback.CreateSurveyDTO{
		IssueID:           &i.ID,
		SatisfactionLevel: "zadovoljan",
		IssueCategory:     "Grijanje",
		Description:       "Sve riješeno u roku",
	})
	require.NoError(t, err)
	assert.Equal(t, "no", sv.ContactPreference)

	// a survey may only reference the tenant's own issue
	_, err = svc.Feedback.SubmitSurvey(other.ID, feedback.CreateSurveyDTO{
		IssueID:           &i.ID,
		SatisfactionLevel: "nezadovoljan",
		IssueCategory:     "Grijanje",
		Description:       "x",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	own, err := svc.Feedback.ListOwnSurveys(tenant.ID)
	require.NoError(t, err)
	assert.Len(t, own, 1)
}

func TestSurveyStats(t *testing.T) {
	svc, repos := newTestServices(t)
	tenant := createTestUser(t, repos, "Amir Hodžić", "amir@example.com", "Stanar")
	other := createTestUser(t, repos, "Lejla Begić", "lejla@example.com", "Stanar")

	_, err := svc.Feedback.SubmitSurvey(tenant.ID, feedback.CreateSurveyDTO{
		SatisfactionLevel: "zadovoljan",
		IssueCategory:     "Lift",
		Description:       "a",
		ContactPreference: "yes",
	})
	require.NoError(t, err)
	_, err = svc.Feedback.SubmitSurvey(other.ID, feedback.CreateSurveyDTO{
		SatisfactionLevel: "nezadovoljan",
		IssueCategory:     "Lift",
		Description:       "b",
	})
	require.NoError(t, err)

	stats, err := svc.Feedback.GetSurveyStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.ByCategory["Lift"])
	assert.Equal(t, int64(1), stats.ByLevel["zadovoljan"])
	assert.Equal(t, int64(1), stats.WantContact)
	assert.Equal(t, int64(2), stats.RecentThisWeek)
}
