package adapters

import (
	"time"

	"lifetrail/internal/feature/accounts/domain/entity"
)

// SessionRecord is the row layout of the sessions table.
// It is exported so the user repository can purge it on account deletion.
type SessionRecord struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    uint   `gorm:"index;not null"`
	UserAgent string `gorm:"size:512"`
	IPAddress string `gorm:"size:45"`
	CreatedAt time.Time
	ExpiresAt time.Time  `gorm:"index;not null"`
	RevokedAt *time.Time `gorm:"index"`
}

func (SessionRecord) TableName() string { return "sessions" }

func (m *SessionRecord) toEntity() *entity.Session {
	s := entity.Session(*m)
	return &s
}

func newSessionRecord(s *entity.Session) *SessionRecord {
	m := SessionRecord(*s)
	return &m
}
