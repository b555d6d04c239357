package models

import "acelera/src/types"

type User struct {
	ID        string     `gorm:"primarykey" json:"id"`
	Name      string     `json:"name,omitempty"`
	Email     string     `gorm:"uniqueIndex" json:"email,omitempty"`
	Role      types.Role `json:"role,omitempty"`
	AvatarURL string     `json:"avatar_url,omitempty"`

	types.Timestamps
}
