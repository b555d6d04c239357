package models

import (
	"acelera/src/types"
)

type Setting struct {
	SettingKey   string `gorm:"primarykey" json:"setting_key"`
	SettingValue string `json:"setting_value"`
	Group        string `gorm:"index" json:"group,omitempty"`

	types.Timestamps
}
