package game

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that owns characters.
type User struct {
	ID    string `json:"id" gorm:"type:varchar(36);primaryKey"`
	Name  string `json:"name"`
	Email string `json:"email" gorm:"uniqueIndex;not null"`
	Phone string `json:"phone"`
	Age   int    `json:"age"`
	// Active users may log in. New accounts start active.
	Active       bool      `json:"active" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// BeforeCreate assigns a UUID when the caller did not provide one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Character is a player's fighter. Race is free text compared
// case-insensitively by the battle engine.
type Character struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Avatar    string    `json:"avatar"`
	Race      string    `json:"race"`
	Class     string    `json:"class" gorm:"column:class_name"`
	Guild     string    `json:"guild"`
	HP        int       `json:"hp" gorm:"column:hp;not null;default:0"`
	Shield    int       `json:"shield" gorm:"not null;default:0"`
	Level     int       `json:"level" gorm:"not null;default:1"`
	IsOnline  bool      `json:"is_online" gorm:"not null;default:false"`
	Kingdom   string    `json:"kingdom"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Character) TableName() string { return "characters" }

func (c *Character) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Battle is the append-only history record of one resolved battle. Only
// the raw rolls are kept; derived figures live on the character rows.
type Battle struct {
	ID             string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	FoughtAt       time.Time `json:"fought_at" gorm:"index;not null"`
	ChallengerID   string    `json:"challenger_id" gorm:"type:varchar(36);index;not null"`
	DefenderID     string    `json:"defender_id" gorm:"type:varchar(36);index;not null"`
	ChallengerRoll int       `json:"challenger_roll" gorm:"not null"`
	DefenderRoll   int       `json:"defender_roll" gorm:"not null"`
}

func (Battle) TableName() string { return "battles" }

func (b *Battle) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
