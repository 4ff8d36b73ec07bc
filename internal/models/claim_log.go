package models

// Audit actions recorded against claims.
const (
	AuditActionCreate = "create"
)

// ClaimLog is one append-only audit event. ClaimID is nullable: the log writer
// re-reads the claim by business identifier and tolerates a miss.
type ClaimLog struct {
	ID        int64  `db:"id" json:"id"`
	ClaimID   *int64 `db:"claim_id" json:"claim_id"`
	Action    string `db:"action" json:"action"`
	Message   string `db:"message" json:"message"`
	Timestamp Date   `db:"timestamp" json:"timestamp"`
}
