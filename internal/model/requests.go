package model

import (
	"time"

	"github.com/google/uuid"
)

// EditEventRequest 一次覆寫活動的純量欄位，nil 代表清空
type EditEventRequest struct {
	EventID     uuid.UUID
	OrganizerID uuid.UUID
	Title       string
	Address     *string
	Description *string
	StartAtUtc  *time.Time
}

// SaveChecklistRequest ChecklistID 為 nil 或找不到時新增清單
type SaveChecklistRequest struct {
	EventID     uuid.UUID
	OrganizerID uuid.UUID
	ChecklistID *uuid.UUID
	Title       string
	Items       []ChecklistItemChanges
}

type RegisterOrganizerRequest struct {
	Username string `json:"username" validate:"required,min=2,max=100,username"`
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=6,max=100,password"`
}

// EditOrganizerRequest 只更新非 nil 的欄位
type EditOrganizerRequest struct {
	OrganizerID uuid.UUID `json:"-"`
	Username    *string   `json:"username" validate:"omitnil,required,min=2,max=100,username"`
	FullName    *string   `json:"fullName" validate:"omitnil,required,min=2,max=100"`
}

type ChangePasswordRequest struct {
	OrganizerID uuid.UUID `json:"-"`
	OldPassword string    `json:"oldPassword" validate:"required"`
	NewPassword string    `json:"newPassword" validate:"required,min=6,max=100,password"`
}
