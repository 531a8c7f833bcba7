package admin

type CreateNoteDTO struct {
	TenantID uint   `json:"tenant_id" binding:"required"`
	Note     string `json:"note" binding:"required"`
}

// ContractorApplicationDTO binds the multipart contractor application form;
// the optional CV file arrives as a separate part.
type ContractorApplicationDTO struct {
	MotivationLetter string `form:"motivation_letter" binding:"required"`
	Reason           string `form:"reason_for_becoming_contractor" binding:"required"`
}

type ManagerApplicationDTO struct {
	MotivationLetter     string `form:"motivation_letter" binding:"required"`
	ManagementExperience string `form:"management_experience" binding:"required"`
	BuildingPlans        string `form:"building_management_plans" binding:"required"`
	AcceptRoleChange     bool   `form:"accept_role_change"`
}

type ApplicationStatus struct {
	HasPendingApplication bool    `json:"has_pending_application"`
	ApplicationType       *string `json:"application_type,omitempty"`
	Status                *string `json:"status,omitempty"`
	SubmittedAt           *string `json:"submitted_at,omitempty"`
}

type ResolveRequestDTO struct {
	AdminNotes *string `json:"admin_notes,omitempty"`
}

type UpdateSettingsDTO struct {
	AllowRegistration  *bool `json:"allow_registration,omitempty"`
	RequireApproval    *bool `json:"require_approval,omitempty"`
	EmailNotifications *bool `json:"email_notifications,omitempty"`
	MaintenanceMode    *bool `json:"maintenance_mode,omitempty"`
	AutoAssignment     *bool `json:"auto_assignment,omitempty"`
}
