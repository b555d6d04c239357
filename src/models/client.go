package models

import (
	"acelera/src/types"
	"slices"
	"time"
)

type Client struct {
	ID            string            `gorm:"primarykey" json:"id"`
	Name          string            `json:"name"`
	Email         string            `gorm:"index" json:"email"`
	Phone         string            `json:"phone"`
	Notes         string            `json:"notes,omitempty"`
	PhotoURLs     types.StringArray `gorm:"type:jsonb" json:"photo_urls"`
	TotalSessions int               `json:"total_sessions"`
	LastVisit     *time.Time        `json:"last_visit,omitempty"`
	// Prospect marks clients created from an approved tattoo request.
	Prospect bool `json:"prospect,omitempty"`

	types.Timestamps
}

func (c Client) Clone() Client {
	c.PhotoURLs = slices.Clone(c.PhotoURLs)
	if c.LastVisit != nil {
		lv := *c.LastVisit
		c.LastVisit = &lv
	}
	return c
}
