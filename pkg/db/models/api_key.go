package models

import "time"

// APIKey is a shared secret that unlocks cart reads and catalog writes.
type APIKey struct {
	Key       string    `gorm:"column:apiKey;type:varchar(128);primaryKey"`
	UUID      string    `gorm:"column:uuid;type:varchar(64)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (APIKey) TableName() string { return "apikeys" }
