package validation

import (
	"context"
	"fmt"

	"github.com/mars1-events-planning/eventool-backend/internal/model"
)

// UsernameChecker 查詢使用者名稱是否已被使用
type UsernameChecker interface {
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

const usernameTakenMessage = "username is already taken"

func (v *Validator) Registration(ctx context.Context, checker UsernameChecker, req model.RegisterOrganizerRequest) error {
	c := v.newCollector()
	c.merge(v.structErrors(req))
	if err := c.uniqueUsername(ctx, checker, req.Username, ""); err != nil {
		return err
	}
	return c.err()
}

// EditOrganizer currentUsername 為主辦人目前的名稱，不視為衝突
func (v *Validator) EditOrganizer(ctx context.Context, checker UsernameChecker, req model.EditOrganizerRequest, currentUsername string) error {
	c := v.newCollector()
	c.merge(v.structErrors(req))
	if req.Username != nil {
		if err := c.uniqueUsername(ctx, checker, *req.Username, currentUsername); err != nil {
			return err
		}
	}
	return c.err()
}

func (v *Validator) ChangePassword(req model.ChangePasswordRequest) error {
	return v.Struct(req)
}

// uniqueUsername 僅回傳查詢失敗，衝突會記錄為欄位錯誤
func (c *collector) uniqueUsername(ctx context.Context, checker UsernameChecker, username, current string) error {
	if username == "" || username == current {
		return nil
	}
	taken, err := checker.UsernameTaken(ctx, username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		c.add("username", usernameTakenMessage)
	}
	return nil
}
