package assignment

import "github.com/fixtrack/fixtrack/internal/domain/issue"

// Status is the assignment-local lifecycle state. It maps one-to-one onto the
// issue vocabulary; the pair always moves together.
type Status string

const (
	StatusAssigned   Status = "Dodijeljeno"
	StatusOnSite     Status = "Na lokaciji"
	StatusInProgress Status = "U toku"
	StatusWaiting    Status = "Čeka dijelove"
	StatusDone       Status = "Završeno"
	StatusRejected   Status = "Odbijeno"
)

var allStatuses = []Status{
	StatusAssigned, StatusOnSite, StatusInProgress,
	StatusWaiting, StatusDone, StatusRejected,
}

var transitions = map[Status][]Status{
	StatusAssigned:   {StatusOnSite, StatusInProgress, StatusWaiting, StatusDone, StatusRejected},
	StatusOnSite:     {StatusInProgress, StatusWaiting, StatusDone, StatusRejected},
	StatusInProgress: {StatusOnSite, StatusWaiting, StatusDone, StatusRejected},
	StatusWaiting:    {StatusInProgress, StatusDone, StatusRejected},
	StatusDone:       {},
	StatusRejected:   {},
}

func ValidStatus(s Status) bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusRejected
}

func (s Status) CanTransition(next Status) bool {
	for _, v := range transitions[s] {
		if v == next {
			return true
		}
	}
	return false
}

// IssueStatusFor is the single mapping between the two vocabularies; both
// engines go through it so the pair can never drift apart.
func IssueStatusFor(s Status) issue.Status {
	switch s {
	case StatusAssigned:
		return issue.StatusAssigned
	case StatusOnSite:
		return issue.StatusOnSite
	case StatusInProgress:
		return issue.StatusInProgress
	case StatusWaiting:
		return issue.StatusWaiting
	case StatusDone:
		return issue.StatusDone
	case StatusRejected:
		return issue.StatusCancelled
	}
	return ""
}

// StatusForIssue is the reverse direction, used when a manager-side issue
// transition has to be written through to the active assignment.
func StatusForIssue(s issue.Status) (Status, bool) {
	switch s {
	case issue.StatusAssigned:
		return StatusAssigned, true
	case issue.StatusOnSite:
		return StatusOnSite, true
	case issue.StatusInProgress:
		return StatusInProgress, true
	case issue.StatusWaiting:
		return StatusWaiting, true
	case issue.StatusDone:
		return StatusDone, true
	case issue.StatusCancelled:
		return StatusRejected, true
	}
	return "", false
}
