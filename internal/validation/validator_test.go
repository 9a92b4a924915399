package validation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mars1-events-planning/eventool-backend/internal/model"
	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"
	"github.com/mars1-events-planning/eventool-backend/pkg/optional"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fields(t *testing.T, err error) []string {
	t.Helper()
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	out := make([]string, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		out = append(out, fe.Field)
	}
	return out
}

func TestEventChanges_Title(t *testing.T) {
	v := New()
	now := time.Now().UTC()

	cases := []struct {
		name  string
		title string
		valid bool
	}{
		{"length 1", "a", false},
		{"length 2", "ab", true},
		{"length 100", strings.Repeat("a", 100), true},
		{"length 101", strings.Repeat("a", 101), false},
		{"multibyte 100", strings.Repeat("я", 100), true},
	}
	for _, tc := range cases {
		t.Run("Create - "+tc.name, func(t *testing.T) {
			err := v.EventChanges(model.EventChanges{Title: optional.Set(strPtr(tc.title))}, now)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, []string{"title"}, fields(t, err))
			}
		})
		t.Run("Update - "+tc.name, func(t *testing.T) {
			id := uuid.New()
			err := v.EventChanges(model.EventChanges{
				EventID: optional.Set(&id),
				Title:   optional.Set(strPtr(tc.title)),
			}, now)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Equal(t, []string{"title"}, fields(t, err))
			}
		})
	}

	t.Run("Failed - create without title", func(t *testing.T) {
		err := v.EventChanges(model.EventChanges{}, now)
		assert.Equal(t, []string{"title"}, fields(t, err))
	})

	t.Run("Failed - create with null title", func(t *testing.T) {
		err := v.EventChanges(model.EventChanges{Title: optional.Set[*string](nil)}, now)
		assert.Equal(t, []string{"title"}, fields(t, err))
	})

	t.Run("Success - update without title", func(t *testing.T) {
		id := uuid.New()
		assert.NoError(t, v.EventChanges(model.EventChanges{EventID: optional.Set(&id)}, now))
	})

	t.Run("Failed - update with empty title", func(t *testing.T) {
		id := uuid.New()
		err := v.EventChanges(model.EventChanges{EventID: optional.Set(&id), Title: optional.Set(strPtr(""))}, now)
		assert.Equal(t, []string{"title"}, fields(t, err))
	})

	t.Run("Failed - null event id", func(t *testing.T) {
		err := v.EventChanges(model.EventChanges{EventID: optional.Set[*uuid.UUID](nil)}, now)
		assert.Equal(t, []string{"eventId"}, fields(t, err))
	})
}

func TestEventChanges_OptionalScalars(t *testing.T) {
	v := New()
	now := time.Now().UTC()
	base := func() model.EventChanges {
		return model.EventChanges{Title: optional.Set(strPtr("Birthday"))}
	}

	t.Run("Success - explicit null and empty clear fields", func(t *testing.T) {
		changes := base()
		changes.Description = optional.Set[*string](nil)
		changes.Address = optional.Set(strPtr(""))
		changes.StartDateTimeUtc = optional.Set[*time.Time](nil)

		assert.NoError(t, v.EventChanges(changes, now))
	})

	t.Run("Failed - collects every violation", func(t *testing.T) {
		past := now.Add(-time.Minute)
		changes := base()
		changes.Description = optional.Set(strPtr(strings.Repeat("d", 501)))
		changes.Address = optional.Set(strPtr("x"))
		changes.StartDateTimeUtc = optional.Set(&past)

		err := v.EventChanges(changes, now)

		assert.Equal(t, []string{"description", "address", "startDateTimeUtc"}, fields(t, err))
	})

	t.Run("Failed - start equal to now", func(t *testing.T) {
		changes := base()
		changes.StartDateTimeUtc = optional.Set(&now)

		assert.Equal(t, []string{"startDateTimeUtc"}, fields(t, v.EventChanges(changes, now)))
	})

	t.Run("Success - start in the future", func(t *testing.T) {
		future := now.Add(time.Second)
		changes := base()
		changes.StartDateTimeUtc = optional.Set(&future)

		assert.NoError(t, v.EventChanges(changes, now))
	})
}

func TestEventChanges_Collections(t *testing.T) {
	v := New()
	now := time.Now().UTC()

	t.Run("Failed - checklist and item rules", func(t *testing.T) {
		changes := model.EventChanges{
			Title: optional.Set(strPtr("Birthday")),
			Checklists: optional.Set([]model.ChecklistChanges{
				{Title: "P", Items: []model.ChecklistItemChanges{
					{Title: "Tent", Done: optional.Set(false)},
					{Title: "T"},
				}},
			}),
		}

		err := v.EventChanges(changes, now)

		assert.Equal(t, []string{
			"checklists[0].title",
			"checklists[0].items[1].title",
			"checklists[0].items[1].done",
		}, fields(t, err))
	})

	t.Run("Failed - guest rules", func(t *testing.T) {
		changes := model.EventChanges{
			Title: optional.Set(strPtr("Birthday")),
			Guests: optional.Set([]model.GuestChanges{
				{Name: "", Contact: "+1", Tags: []string{"ok", " "}},
			}),
		}

		err := v.EventChanges(changes, now)

		assert.Equal(t, []string{"guests[0].name", "guests[0].tags[1]"}, fields(t, err))
	})

	t.Run("Failed - empty uuid references", func(t *testing.T) {
		empty := uuid.Nil
		changes := model.EventChanges{
			Title: optional.Set(strPtr("Birthday")),
			Checklists: optional.Set([]model.ChecklistChanges{{
				ChecklistID: optional.Set(&empty),
				Title:       "Packing",
				Items:       []model.ChecklistItemChanges{{Title: "Tent", Done: optional.Set(false)}},
			}}),
			Guests: optional.Set([]model.GuestChanges{
				{ID: optional.Set(&empty), Name: "Alice", Contact: "+1"},
			}),
		}

		err := v.EventChanges(changes, now)

		assert.Equal(t, []string{"checklists[0].checklistId", "guests[0].id"}, fields(t, err))
	})

	t.Run("Success - null reference means a new entry", func(t *testing.T) {
		changes := model.EventChanges{
			Title: optional.Set(strPtr("Birthday")),
			Checklists: optional.Set([]model.ChecklistChanges{{
				ChecklistID: optional.Set[*uuid.UUID](nil),
				Title:       "Packing",
				Items:       []model.ChecklistItemChanges{{Title: "Tent", Done: optional.Set(false)}},
			}}),
		}

		assert.NoError(t, v.EventChanges(changes, now))
	})
}

func TestSaveChecklist(t *testing.T) {
	v := New()

	t.Run("Failed - empty items", func(t *testing.T) {
		err := v.SaveChecklist(model.SaveChecklistRequest{Title: "Packing"})
		assert.Equal(t, []string{"items"}, fields(t, err))
	})

	t.Run("Failed - title longer than 80", func(t *testing.T) {
		err := v.SaveChecklist(model.SaveChecklistRequest{
			Title: strings.Repeat("a", 81),
			Items: []model.ChecklistItemChanges{{Title: "Tent", Done: optional.Set(true)}},
		})
		assert.Equal(t, []string{"title"}, fields(t, err))
	})
}

type stubChecker struct {
	taken map[string]bool
	err   error
}

func (s stubChecker) UsernameTaken(_ context.Context, username string) (bool, error) {
	return s.taken[username], s.err
}

func TestRegistration(t *testing.T) {
	v := New()
	ctx := context.Background()
	checker := stubChecker{taken: map[string]bool{"taken": true}}

	t.Run("Success", func(t *testing.T) {
		err := v.Registration(ctx, checker, model.RegisterOrganizerRequest{
			Username: "john_doe", FullName: "John Doe", Password: "Secret1",
		})
		assert.NoError(t, err)
	})

	t.Run("Failed - username taken", func(t *testing.T) {
		err := v.Registration(ctx, checker, model.RegisterOrganizerRequest{
			Username: "taken", FullName: "John Doe", Password: "Secret1",
		})
		assert.Equal(t, []string{"username"}, fields(t, err))
	})

	t.Run("Failed - format rules", func(t *testing.T) {
		err := v.Registration(ctx, checker, model.RegisterOrganizerRequest{
			Username: "john doe", FullName: "J", Password: "secret",
		})
		assert.ElementsMatch(t, []string{"username", "fullName", "password"}, fields(t, err))
	})

	t.Run("Failed - lookup error", func(t *testing.T) {
		err := v.Registration(ctx, stubChecker{err: errors.New("db down")}, model.RegisterOrganizerRequest{
			Username: "john", FullName: "John Doe", Password: "Secret1",
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestEditOrganizer(t *testing.T) {
	v := New()
	ctx := context.Background()
	checker := stubChecker{taken: map[string]bool{"john": true, "other": true}}

	t.Run("Success - keeps own username", func(t *testing.T) {
		err := v.EditOrganizer(ctx, checker, model.EditOrganizerRequest{Username: strPtr("john")}, "john")
		assert.NoError(t, err)
	})

	t.Run("Success - nothing provided", func(t *testing.T) {
		assert.NoError(t, v.EditOrganizer(ctx, checker, model.EditOrganizerRequest{}, "john"))
	})

	t.Run("Failed - username of another organizer", func(t *testing.T) {
		err := v.EditOrganizer(ctx, checker, model.EditOrganizerRequest{Username: strPtr("other")}, "john")
		assert.Equal(t, []string{"username"}, fields(t, err))
	})

	t.Run("Failed - short full name", func(t *testing.T) {
		err := v.EditOrganizer(ctx, checker, model.EditOrganizerRequest{FullName: strPtr("J")}, "john")
		assert.Equal(t, []string{"fullName"}, fields(t, err))
	})
}
