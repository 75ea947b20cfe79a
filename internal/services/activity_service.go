package services

import (
	"context"
	"fmt"

	"agritrack/internal/models"
	"agritrack/internal/repositories"
)

// ActivityService plans farm work and tracks its completion.
type ActivityService struct {
	base
	activities repositories.ActivityRepository
	farms      repositories.FarmRepository
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activities repositories.ActivityRepository, farms repositories.FarmRepository, opts ...Option) *ActivityService {
	return &ActivityService{base: newBase("activities", opts), activities: activities, farms: farms}
}

// List returns a farm's activities, most recently created first.
func (s *ActivityService) List(ctx context.Context, ownerID, farmID string) ([]models.Activity, error) {
	if err := authorizeFarm(ctx, s.farms, farmID, ownerID); err != nil {
		return nil, err
	}
	activities, err := s.activities.ListByFarm(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	return activities, nil
}

// Create stores a new, not yet completed activity. custom_date is kept only
// for the custom time frame.
func (s *ActivityService) Create(ctx context.Context, ownerID string, req models.CreateActivityRequest) (*models.Activity, error) {
	if err := authorizeFarm(ctx, s.farms, req.FarmID, ownerID); err != nil {
		return nil, err
	}

	activity := &models.Activity{
		FarmID:      req.FarmID,
		Description: req.Description,
		TimeFrame:   req.TimeFrame,
		Priority:    req.Priority,
		Notes:       req.Notes,
	}
	if req.TimeFrame == models.TimeFrameCustom {
		date, err := models.ParseDate(req.CustomDate)
		if err != nil {
			return nil, NewValidationError("custom_date", customDateMessage)
		}
		activity.CustomDate = &date
	}

	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	s.emit(ctx, "activity.created", activity.ToClient())
	return activity, nil
}

// Update applies the provided fields. The time frame and custom date are
// checked against the stored record so the result always satisfies the
// custom-date rule.
func (s *ActivityService) Update(ctx context.Context, ownerID, id string, req models.UpdateActivityRequest) error {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "Activity")
	}
	if err := authorizeRecord(ctx, s.farms, activity.FarmID, ownerID, "Activity"); err != nil {
		return err
	}

	patch := models.ActivityPatch{
		Description: nonEmpty(req.Description),
		TimeFrame:   nonEmpty(req.TimeFrame),
		Priority:    nonEmpty(req.Priority),
		Notes:       req.Notes,
	}

	timeFrame := activity.TimeFrame
	if patch.TimeFrame != nil {
		timeFrame = *patch.TimeFrame
	}
	if timeFrame == models.TimeFrameCustom {
		if d := nonEmpty(req.CustomDate); d != nil {
			date, err := models.ParseDate(*d)
			if err != nil {
				return NewValidationError("custom_date", dateMessage)
			}
			patch.CustomDate = &date
		} else if activity.CustomDate == nil {
			return NewValidationError("custom_date", customDateMessage)
		}
	} else if activity.CustomDate != nil {
		patch.ClearCustomDate = true
	}

	if err := s.activities.Update(ctx, id, patch); err != nil {
		return notFound(err, "Activity")
	}
	s.emit(ctx, "activity.updated", map[string]string{"id": id, "farm_id": activity.FarmID})
	return nil
}

func (s *ActivityService) Delete(ctx context.Context, ownerID, id string) error {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "Activity")
	}
	if err := authorizeRecord(ctx, s.farms, activity.FarmID, ownerID, "Activity"); err != nil {
		return err
	}
	if err := s.activities.Delete(ctx, id); err != nil {
		return notFound(err, "Activity")
	}
	s.emit(ctx, "activity.deleted", map[string]string{"id": id, "farm_id": activity.FarmID})
	return nil
}

// Toggle flips completed and returns the new value.
func (s *ActivityService) Toggle(ctx context.Context, ownerID, id string) (bool, error) {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return false, notFound(err, "Activity")
	}
	if err := authorizeRecord(ctx, s.farms, activity.FarmID, ownerID, "Activity"); err != nil {
		return false, err
	}
	completed, err := s.activities.Toggle(ctx, id)
	if err != nil {
		return false, notFound(err, "Activity")
	}
	s.emit(ctx, "activity.toggled", map[string]interface{}{"id": id, "farm_id": activity.FarmID, "completed": completed})
	return completed, nil
}
