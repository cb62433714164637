package domain

import "time"

// User is one chat participant, created on the first message observed from
// its transport identifier. The display name is a snapshot taken at creation
// and never refreshed afterwards.
type User struct {
	ID       string `gorm:"primaryKey"`
	Name     string
	JoinedAt time.Time
}
