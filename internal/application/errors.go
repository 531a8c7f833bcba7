package application

import "errors"

// Error kinds surfaced to the API layer. Handlers map these to HTTP status
// codes with errors.Is; everything else is a 500.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrRoleNotFound         = errors.New("role not found")
	ErrIssueNotFound        = errors.New("issue not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrRequestNotFound      = errors.New("role request not found")
	ErrRatingNotFound       = errors.New("rating not found")

	ErrForbidden     = errors.New("forbidden")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidState  = errors.New("invalid state for this operation")

	ErrDuplicateAssignment = errors.New("issue already has an active assignment")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPendingApplication  = errors.New("a pending application already exists")
	ErrAlreadyInRole       = errors.New("user already holds the requested role")
	ErrRoleInUse           = errors.New("role is assigned to users")
	ErrRoleNameTaken       = errors.New("role name already exists")
	ErrSelfDelete          = errors.New("cannot delete own account")
	ErrSelfRoleDelete      = errors.New("cannot delete own role")
	ErrRequestResolved     = errors.New("role request already resolved")
	ErrRegistrationClosed  = errors.New("registration is disabled")
)
