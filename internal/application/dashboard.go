package application

import (
	"time"

	"github.com/fixtrack/fixtrack/internal/domain/issue"
	"github.com/fixtrack/fixtrack/internal/repository"
)

var activeIssueStatuses = []issue.Status{
	issue.StatusAssigned,
	issue.StatusOnSite,
	issue.StatusInProgress,
	issue.StatusWaiting,
}

// TenantDashboard summarizes the tenant's own issues.
type TenantDashboard struct {
	TotalIssues     int64         `json:"total_issues"`
	OpenIssues      int64         `json:"open_issues"`
	InProgress      int64         `json:"in_progress"`
	CompletedIssues int64         `json:"completed_issues"`
	RecentIssues    []issue.Issue `json:"recent_issues"`
}

// ManagerDashboard is the building-wide view.
type ManagerDashboard struct {
	TotalIssues     int64         `json:"total_issues"`
	Unassigned      int64         `json:"unassigned"`
	InProgress      int64         `json:"in_progress"`
	CompletedIssues int64         `json:"completed_issues"`
	CompletedWeek   int64         `json:"completed_this_week"`
	AvgRating       float64       `json:"avg_rating"`
	AvgResolution   float64       `json:"avg_resolution_days"`
	RecentIssues    []issue.Issue `json:"recent_issues"`
}

// ContractorDashboard summarizes one contractor's workload.
type ContractorDashboard struct {
	TotalAssignments int64 `json:"total_assignments"`
	ActiveWork       int64 `json:"active_work"`
	CompletedWork    int64 `json:"completed_work"`
	CompletedMonth   int64 `json:"completed_this_month"`
}

type DashboardService struct {
	Repos *repository.Repos
}

func NewDashboardService(repos *repository.Repos) *DashboardService {
	return &DashboardService{Repos: repos}
}

func (s *DashboardService) TenantDashboard(tenantID uint) (*TenantDashboard, error) {
	total, err := s.Repos.Issue.CountIssuesByTenant(tenantID, nil)
	if err != nil {
		return nil, err
	}
	open, err := s.Repos.Issue.CountIssuesByTenant(tenantID, []issue.Status{issue.StatusReceived})
	if err != nil {
		return nil, err
	}
	inProgress, err := s.Repos.Issue.CountIssuesByTenant(tenantID, activeIssueStatuses)
	if err != nil {
		return nil, err
	}
	completed, err := s.Repos.Issue.CountIssuesByTenant(tenantID, []issue.Status{issue.StatusDone})
	if err != nil {
		return nil, err
	}
	recent, err := s.Repos.Issue.ListIssuesByTenant(tenantID, issue.ListFilter{SortBy: "created_at", SortOrder: "desc"})
	if err != nil {
		return nil, err
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return &TenantDashboard{
		TotalIssues:     total,
		OpenIssues:      open,
		InProgress:      inProgress,
		CompletedIssues: completed,
		RecentIssues:    recent,
	}, nil
}

func (s *DashboardService) ManagerDashboard() (*ManagerDashboard, error) {
	total, err := s.Repos.Issue.CountIssuesByStatus(nil, nil)
	if err != nil {
		return nil, err
	}
	unassigned, err := s.Repos.Issue.CountIssuesByStatus([]issue.Status{issue.StatusReceived}, nil)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.Repos.Issue.CountIssuesByStatus(activeIssueStatuses, nil)
	if err != nil {
		return nil, err
	}
	completed, err := s.Repos.Issue.CountIssuesByStatus([]issue.Status{issue.StatusDone}, nil)
	if err != nil {
		return nil, err
	}
	weekAgo := time.Now().AddDate(0, 0, -7)
	completedWeek, err := s.Repos.Issue.CountIssuesByStatus([]issue.Status{issue.StatusDone}, &weekAgo)
	if err != nil {
		return nil, err
	}
	avgRating, err := s.Repos.Feedback.AverageRating()
	if err != nil {
		return nil, err
	}
	avgResolution, err := s.averageResolutionDays()
	if err != nil {
		return nil, err
	}
	recent, err := s.Repos.Issue.ListRecentIssues(5)
	if err != nil {
		return nil, err
	}

	return &ManagerDashboard{
		TotalIssues:     total,
		Unassigned:      unassigned,
		InProgress:      inProgress,
		CompletedIssues: completed,
		CompletedWeek:   completedWeek,
		AvgRating:       avgRating,
		AvgResolution:   avgResolution,
		RecentIssues:    recent,
	}, nil
}

// averageResolutionDays averages created-to-completed time over finished
// issues.
func (s *DashboardService) averageResolutionDays() (float64, error) {
	done := issue.StatusDone
	issues, err := s.Repos.Issue.ListIssues(issue.ListFilter{Status: &done})
	if err != nil {
		return 0, err
	}
	if len(issues) == 0 {
		return 0, nil
	}
	var totalDays float64
	for _, i := range issues {
		totalDays += i.UpdatedAt.Sub(i.CreatedAt).Hours() / 24
	}
	return totalDays / float64(len(issues)), nil
}

func (s *DashboardService) ContractorDashboard(contractorID uint) (*ContractorDashboard, error) {
	total, err := s.Repos.Assignment.CountAssignmentsByContractor(contractorID)
	if err != nil {
		return nil, err
	}

	active := make([]string, 0, len(activeIssueStatuses))
	for _, st := range activeIssueStatuses {
		active = append(active, string(st))
	}
	activeCount, err := s.Repos.Assignment.CountAssignmentsByContractorAndIssueStatus(contractorID, active, nil)
	if err != nil {
		return nil, err
	}

	completedStatuses := []string{string(issue.StatusDone)}
	completed, err := s.Repos.Assignment.CountAssignmentsByContractorAndIssueStatus(contractorID, completedStatuses, nil)
	if err != nil {
		return nil, err
	}
	monthAgo := time.Now().AddDate(0, -1, 0)
	completedMonth, err := s.Repos.Assignment.CountAssignmentsByContractorAndIssueStatus(contractorID, completedStatuses, &monthAgo)
	if err != nil {
		return nil, err
	}

	return &ContractorDashboard{
		TotalAssignments: total,
		ActiveWork:       activeCount,
		CompletedWork:    completed,
		CompletedMonth:   completedMonth,
	}, nil
}
