package gql

import (
	"context"

	"github.com/mars1-events-planning/eventool-backend/internal/model"
	"github.com/mars1-events-planning/eventool-backend/internal/service"
	apperrors "github.com/mars1-events-planning/eventool-backend/pkg/app_errors"

	"github.com/graph-gophers/graphql-go"
)

type organizerResolver struct {
	organizer *model.Organizer
}

func (r *organizerResolver) ID() graphql.ID {
	return graphql.ID(r.organizer.ID.String())
}

func (r *organizerResolver) Fullname() string {
	return r.organizer.FullName
}

func (r *organizerResolver) Username() string {
	return r.organizer.Username
}

func (r *organizerResolver) PhotoUrl() *string {
	return r.organizer.PhotoURL
}

type eventResolver struct {
	event      *model.Event
	organizers service.OrganizerService
}

func (r *eventResolver) ID() graphql.ID {
	return graphql.ID(r.event.ID().String())
}

func (r *eventResolver) Title() string {
	return r.event.Title()
}

func (r *eventResolver) Address() *string {
	return r.event.Address()
}

func (r *eventResolver) Description() *string {
	return r.event.Description()
}

func (r *eventResolver) CreatedAtUtc() graphql.Time {
	return graphql.Time{Time: r.event.CreatedAt()}
}

func (r *eventResolver) ChangedAtUtc() graphql.Time {
	return graphql.Time{Time: r.event.ChangedAtUtc()}
}

func (r *eventResolver) StartAtUtc() *graphql.Time {
	start := r.event.StartAtUtc()
	if start == nil {
		return nil
	}
	return &graphql.Time{Time: *start}
}

func (r *eventResolver) Photos() []string {
	return r.event.ImagesUrls()
}

func (r *eventResolver) Checklists() []*checklistResolver {
	checklists := r.event.Checklists()
	out := make([]*checklistResolver, 0, len(checklists))
	for _, c := range checklists {
		out = append(out, &checklistResolver{checklist: c})
	}
	return out
}

func (r *eventResolver) Guests() []*guestResolver {
	guests := r.event.Guests()
	out := make([]*guestResolver, 0, len(guests))
	for _, g := range guests {
		out = append(out, &guestResolver{guest: g})
	}
	return out
}

// Creator 每次解析都向 OrganizerService 查詢
func (r *eventResolver) Creator(ctx context.Context) (*organizerResolver, error) {
	organizer, err := r.organizers.GetByID(ctx, r.event.CreatorID())
	if err != nil {
		return nil, translate(err)
	}
	if organizer == nil {
		return nil, translate(apperrors.NewOrganizerNotFound(r.event.CreatorID()))
	}
	return &organizerResolver{organizer: organizer}, nil
}

type checklistResolver struct {
	checklist model.Checklist
}

func (r *checklistResolver) ID() graphql.ID {
	return graphql.ID(r.checklist.ID.String())
}

func (r *checklistResolver) Title() string {
	return r.checklist.Title
}

func (r *checklistResolver) Items() []*checklistItemResolver {
	out := make([]*checklistItemResolver, 0, len(r.checklist.Items))
	for _, item := range r.checklist.Items {
		out = append(out, &checklistItemResolver{item: item})
	}
	return out
}

type checklistItemResolver struct {
	item model.ChecklistItem
}

func (r *checklistItemResolver) Title() string {
	return r.item.Title
}

func (r *checklistItemResolver) Done() bool {
	return r.item.Done
}

type guestResolver struct {
	guest model.Guest
}

func (r *guestResolver) ID() graphql.ID {
	return graphql.ID(r.guest.ID.String())
}

func (r *guestResolver) Name() string {
	return r.guest.Name
}

func (r *guestResolver) Contact() string {
	return r.guest.Contact
}

func (r *guestResolver) PhotoUrl() *string {
	return r.guest.PhotoURL
}

func (r *guestResolver) Tags() []string {
	if r.guest.Tags == nil {
		return []string{}
	}
	return r.guest.Tags
}
