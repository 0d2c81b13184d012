package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated account
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	FullName  string    `json:"full_name" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// OrganizationMember is a user's membership in an organization. Assignee
// name resolution only considers active memberships.
type OrganizationMember struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	FullName       string    `json:"full_name" gorm:"type:varchar(255);not null"`
	Role           string    `json:"role" gorm:"type:varchar(50);default:'member'"`
	IsActive       bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (OrganizationMember) TableName() string {
	return "organization_members"
}
