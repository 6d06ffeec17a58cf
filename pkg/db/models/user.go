package models

import "time"

// User is a registered shopper. Column names follow the legacy User3 table.
type User struct {
	UserID    string     `gorm:"column:Userid;type:varchar(64);primaryKey" json:"Userid"`
	Name      string     `gorm:"column:Name;type:varchar(255)" json:"Name"`
	Birthdate *time.Time `gorm:"column:Birthdate;type:date" json:"Birthdate,omitempty"`
	Gender    string     `gorm:"column:Gender;type:varchar(32)" json:"Gender,omitempty"`
	PhoneNum  string     `gorm:"column:Phone_num;type:varchar(32)" json:"Phone_num,omitempty"`
	Email     string     `gorm:"column:Email;type:varchar(255)" json:"Email,omitempty"`
	Password  string     `gorm:"column:Password;type:varchar(255);not null" json:"-"`
}

func (User) TableName() string { return "User3" }
