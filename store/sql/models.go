package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type memberRoleRecord struct {
	bun.BaseModel `bun:"table:member_roles,alias:mr"`

	ID        string    `bun:"id,pk"`
	UserID    string    `bun:"user_id,notnull"`
	Role      string    `bun:"role,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func newMemberRoleRecord(userID string, role string, now time.Time) *memberRoleRecord {
	return &memberRoleRecord{
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
	}
}
