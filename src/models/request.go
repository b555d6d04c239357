package models

import (
	"acelera/src/types"
	"slices"
)

// TattooRequest is an intake request submitted through the public form.
// Submitters are not clients yet, so contact info is kept inline.
type TattooRequest struct {
	ID            string              `gorm:"primarykey" json:"id"`
	ClientName    string              `json:"client_name"`
	ClientEmail   string              `json:"client_email"`
	ClientPhone   string              `json:"client_phone"`
	Description   string              `json:"description"`
	BodyPart      string              `json:"body_part"`
	Size          string              `json:"size"`
	Style         string              `json:"style"`
	Budget        string              `json:"budget,omitempty"`
	PhotoURLs     types.StringArray   `gorm:"type:jsonb" json:"photo_urls"`
	AvailableDays types.StringArray   `gorm:"type:jsonb" json:"available_days"`
	Status        types.RequestStatus `gorm:"index" json:"status"`
	AdminNotes    string              `json:"admin_notes,omitempty"`

	types.Timestamps
}

func (r TattooRequest) Clone() TattooRequest {
	r.PhotoURLs = slices.Clone(r.PhotoURLs)
	r.AvailableDays = slices.Clone(r.AvailableDays)
	return r
}
