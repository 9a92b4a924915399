package gql

import (
	"context"

	"github.com/mars1-events-planning/eventool-backend/internal/auth"
	"github.com/mars1-events-planning/eventool-backend/internal/model"
	"github.com/mars1-events-planning/eventool-backend/internal/service"

	"github.com/graph-gophers/graphql-go"
)

// Resolver Query 與 Mutation 的根 resolver
type Resolver struct {
	events     service.EventService
	organizers service.OrganizerService
}

func NewResolver(events service.EventService, organizers service.OrganizerService) *Resolver {
	return &Resolver{
		events:     events,
		organizers: organizers,
	}
}

func (r *Resolver) event(event *model.Event) *eventResolver {
	return &eventResolver{event: event, organizers: r.organizers}
}

// ===== Query =====

func (r *Resolver) Authorized(ctx context.Context) bool {
	_, ok := auth.OrganizerIDFrom(ctx)
	return ok
}

func (r *Resolver) Organizer(ctx context.Context) (*organizerResolver, error) {
	organizerID, err := auth.RequireOrganizerID(ctx)
	if err != nil {
		return nil, translate(err)
	}
	organizer, err := r.organizers.GetByID(ctx, organizerID)
	if err != nil || organizer == nil {
		return nil, translate(err)
	}
	return &organizerResolver{organizer: organizer}, nil
}

func (r *Resolver) OrganizerByUsername(ctx context.Context, args struct{ Username string }) (*organizerResolver, error) {
	if _, err := auth.RequireOrganizerID(ctx); err != nil {
		return nil, translate(err)
	}
	organizer, err := r.organizers.GetByUsername(ctx, args.Username)
	if err != nil || organizer == nil {
		return nil, translate(err)
	}
	return &organizerResolver{organizer: organizer}, nil
}

func (r *Resolver) Events(ctx context.Context, args struct{ Page int32 }) ([]*eventResolver, error) {
	organizerID, err := auth.RequireOrganizerID(ctx)
	if err != nil {
		return nil, translate(err)
	}
	events, err := r.events.ListByOrganizer(ctx, organizerID, int(args.Page))
	if err != nil {
		return nil, translate(err)
	}
	out := make([]*eventResolver, 0, len(events))
	for _, e := range events {
		out = append(out, r.event(e))
	}
	return out, nil
}

func (r *Resolver) Event(ctx context.Context, args struct{ EventID graphql.ID }) (*eventResolver, error) {
	organizerID, err := auth.RequireOrganizerID(ctx)
	if err != nil {
		return nil, translate(err)
	}
	eventID, err := parseID("eventId", args.EventID)
	if err != nil {
		return nil, translate(err)
	}
	event, err := r.events.GetByID(ctx, organizerID, eventID)
	if err != nil || event == nil {
		return nil, translate(err)
	}
	return r.event(event), nil
}

// ===== Mutation: organizer =====

func (r *Resolver) RegisterOrganizer(ctx context.Context, args struct {
	Username string
	FullName string
	Password string
}) (*organizerResolver, error) {
	organizer, err := r.organizers.Register(ctx, model.RegisterOrganizerRequest{
		Username: args.Username,
		FullName: args.FullName,
		Password: args.Password,
	})
	if err != nil {
		return nil, translate(err)
	}
	return &organizerResolver{organizer: organizer}, nil
}

func (r *Resolver) Login(ctx context.Context, args struct {
	Username string
	Password string
}) (string, error) {
	token, err := r.organizers.Login(ctx, args.Username, args.Password)
	if err != nil {
		return "", translate(err)
	}
	return token, nil
}

func (r *Resolver) ChangePassword(ctx context.Context, args struct {
	OldPassword string
	NewPassword string
}) (bool, error) {
	organizerID, err := auth.RequireOrganizerID(ctx)
	if err != nil {
		return false, translate(err)
	}
	err = r.organizers.ChangePassword(ctx, model.ChangePasswordRequest{
		OrganizerID: organizerID,
		OldPassword: args.OldPassword,
		NewPassword: args.NewPassword,
	})
	if err != nil {
		return false, translate(err)
	}
	return true, nil
}

func (r *Resolver) EditOrganizer(ctx context.Context, args struct {
	Username *string
	FullName *string
}) (*organizerResolver, error) {
	organizerID, err := auth.RequireOrganizerID(ctx)
	if err != nil {
		return nil, translate(err)
	}
	organizer, err := r.organizers.EditOrganizer(ctx, model.EditOrganizerRequest{
		OrganizerID: organizerID,
		Username:    args.Username,
		FullName:    args.FullName,
	})
	if err != nil {
		return nil, translate(err)
	}
	return &organizerResolver{organizer: organizer}, nil
}

// ===== Mutation: event =====

func (r *Resolver) CreateEvent(ctx context.Context, args struct{ Title string }) (*eventResolver, error) {
	organizerID, err := auth.RequireOrganizerID(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return r.eventResult(r.events.CreateEvent(ctx, organizerID, args.Title))
}

func (r *Resolver) EditEvent(ctx context.Context, args struct {
	EventID     graphql.ID
	Title       string
	Address     *string
	Description *string
	StartAtUtc  *graphql.Time
}) (*eventResolver, error) {
	organizerID, err := auth.RequireOrganizerID(ctx)
	if err != nil {
		return nil, translate(err)
	}
	eventID, err := parseID("eventId", args.EventID)
	if err != nil {
		return nil, translate(err)
	}

	req := model.EditEventRequest{
		EventID:     eventID,
		OrganizerID: organizerID,
		Title:       args.Title,
		Address:     args.Address,
		Description: args.Description,
	}
	if args.StartAtUtc != nil {
		start := args.StartAtUtc.Time.UTC()
		req.StartAtUtc = &start
	}
	return r.eventResult(r.events.EditEvent(ctx, req))
}

func (r *Resolver) SaveChecklist(ctx context.Context, args struct {
	EventID     graphql.ID
	ChecklistID *graphql.ID
	Title       string
	Items       []*ChecklistItemInput
}) (*eventResolver, error) {
	organizerID, err := auth.RequireOrganizerID(ctx)
	if err != nil {
		return nil, translate(err)
	}
	eventID, err := parseID("eventId", args.EventID)
	if err != nil {
		return nil, translate(err)
	}

	req := model.SaveChecklistRequest{
		EventID:     eventID,
		OrganizerID: organizerID,
		Title:       args.Title,
		Items:       toItemChanges(args.Items),
	}
	if args.ChecklistID != nil {
		checklistID, err := parseID("checklistId", *args.ChecklistID)
		if err != nil {
			return nil, translate(err)
		}
		req.ChecklistID = &checklistID
	}
	return r.eventResult(r.events.SaveChecklist(ctx, req))
}

func (r *Resolver) SaveEvent(ctx context.Context, args struct{ Input EventInput }) (*eventResolver, error) {
	organizerID, err := auth.RequireOrganizerID(ctx)
	if err != nil {
		return nil, translate(err)
	}
	changes, err := args.Input.toChanges()
	if err != nil {
		return nil, translate(err)
	}
	return r.eventResult(r.events.SaveEvent(ctx, organizerID, changes))
}

func (r *Resolver) DeleteChecklist(ctx context.Context, args struct {
	EventID     graphql.ID
	ChecklistID graphql.ID
}) (*eventResolver, error) {
	organizerID, err := auth.RequireOrganizerID(ctx)
	if err != nil {
		return nil, translate(err)
	}
	eventID, err := parseID("eventId", args.EventID)
	if err != nil {
		return nil, translate(err)
	}
	checklistID, err := parseID("checklistId", args.ChecklistID)
	if err != nil {
		return nil, translate(err)
	}
	return r.eventResult(r.events.DeleteChecklist(ctx, organizerID, eventID, checklistID))
}

func (r *Resolver) DeleteGuest(ctx context.Context, args struct {
	EventID graphql.ID
	GuestID graphql.ID
}) (*eventResolver, error) {
	organizerID, err := auth.RequireOrganizerID(ctx)
	if err != nil {
		return nil, translate(err)
	}
	eventID, err := parseID("eventId", args.EventID)
	if err != nil {
		return nil, translate(err)
	}
	guestID, err := parseID("guestId", args.GuestID)
	if err != nil {
		return nil, translate(err)
	}
	return r.eventResult(r.events.DeleteGuest(ctx, organizerID, eventID, guestID))
}

func (r *Resolver) DeleteEvent(ctx context.Context, args struct{ EventID graphql.ID }) (bool, error) {
	organizerID, err := auth.RequireOrganizerID(ctx)
	if err != nil {
		return false, translate(err)
	}
	eventID, err := parseID("eventId", args.EventID)
	if err != nil {
		return false, translate(err)
	}
	if err := r.events.DeleteEvent(ctx, organizerID, eventID); err != nil {
		return false, translate(err)
	}
	return true, nil
}

func (r *Resolver) eventResult(event *model.Event, err error) (*eventResolver, error) {
	if err != nil {
		return nil, translate(err)
	}
	return r.event(event), nil
}
