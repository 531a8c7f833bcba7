package issue

// Status is the lifecycle state of a filed issue. The vocabulary is fixed;
// anything else is rejected before it reaches the database.
type Status string

const (
	StatusReceived   Status = "Primljeno"
	StatusAssigned   Status = "Dodijeljeno izvođaču"
	StatusOnSite     Status = "Na lokaciji"
	StatusInProgress Status = "Popravka u toku"
	StatusWaiting    Status = "Čeka dijelove"
	StatusDone       Status = "Završeno"
	StatusCancelled  Status = "Otkazano"
)

var allStatuses = []Status{
	StatusReceived, StatusAssigned, StatusOnSite,
	StatusInProgress, StatusWaiting, StatusDone, StatusCancelled,
}

// transitions is the canonical table: forward progression, jumps between
// in-progress states, and cancellation from any non-terminal state.
var transitions = map[Status][]Status{
	StatusReceived:   {StatusAssigned, StatusCancelled},
	StatusAssigned:   {StatusOnSite, StatusInProgress, StatusWaiting, StatusDone, StatusCancelled},
	StatusOnSite:     {StatusInProgress, StatusWaiting, StatusDone, StatusCancelled},
	StatusInProgress: {StatusOnSite, StatusWaiting, StatusDone, StatusCancelled},
	StatusWaiting:    {StatusInProgress, StatusDone, StatusCancelled},
	StatusDone:       {},
	StatusCancelled:  {},
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
	return s == StatusDone || s == StatusCancelled
}

// CanTransition reports whether moving from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	for _, v := range transitions[s] {
		if v == next {
			return true
		}
	}
	return false
}
