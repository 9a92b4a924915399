package model

import "github.com/google/uuid"

// HashedPassword 密碼雜湊與鹽值，皆為 base64
type HashedPassword struct {
	Hash string `json:"hash"`
	Salt string `json:"salt"`
}

// Organizer 活動主辦人
type Organizer struct {
	ID             uuid.UUID      `json:"id"`
	FullName       string         `json:"full_name"`
	Username       string         `json:"username"`
	HashedPassword HashedPassword `json:"-"`
	PhotoURL       *string        `json:"photo_url,omitempty"`
}

func NewOrganizer(id uuid.UUID, username, fullName string, password HashedPassword) *Organizer {
	return &Organizer{
		ID:             id,
		Username:       username,
		FullName:       fullName,
		HashedPassword: password,
	}
}
