package models

import "time"

// AuditAction constants represent admin actions to be logged.
const (
	AuditActionEnrollmentApprove = "ENROLLMENT_APPROVE"
	AuditActionEnrollmentReject  = "ENROLLMENT_REJECT"
	AuditActionCertificateIssue  = "CERTIFICATE_ISSUE"
	AuditActionCertificateDelete = "CERTIFICATE_DELETE"
	AuditActionFranchiseStatus   = "FRANCHISE_STATUS"
	AuditActionJobStatus         = "JOB_STATUS"
	AuditActionJobDelete         = "JOB_DELETE"
	AuditActionAdminDelete       = "ADMIN_DELETE"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	ActorID    string    `db:"actor_id" json:"actor_id"`
	ActorRole  Role      `db:"actor_role" json:"actor_role"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	Payload    []byte    `db:"payload" json:"payload,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
