package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"fitcontest/internal/domain/model"
	"fitcontest/internal/domain/repository"
	"fitcontest/internal/platform/queue"
)

// publish never fails the caller; the write it reports on has already committed.
func publish(ctx context.Context, pub queue.Publisher, logger *zap.Logger, event queue.Event) {
	if err := pub.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish activity event",
			zap.String("type", event.Type),
			zap.Int64("user_id", event.UserID),
			zap.Int64("contest_id", event.ContestID),
			zap.Error(err))
	}
}

// WeighinService records weigh-ins and announces them on the activity queue.
type WeighinService struct {
	repository.WeighinRepository
	publisher queue.Publisher
	logger    *zap.Logger
}

func NewWeighinService(repo repository.WeighinRepository, publisher queue.Publisher, logger *zap.Logger) *WeighinService {
	return &WeighinService{WeighinRepository: repo, publisher: publisher, logger: logger}
}

func (s *WeighinService) Create(ctx context.Context, in model.NewWeighin) (*model.Weighin, error) {
	w, err := s.WeighinRepository.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to record weigh-in: %w", err)
	}
	publish(ctx, s.publisher, s.logger, queue.NewEvent(queue.EventWeighinRecorded, w.UserID, w.ContestID, w))
	return w, nil
}

// PointsService awards points and announces them on the activity queue.
type PointsService struct {
	repository.PointsRepository
	publisher queue.Publisher
	logger    *zap.Logger
}

func NewPointsService(repo repository.PointsRepository, publisher queue.Publisher, logger *zap.Logger) *PointsService {
	return &PointsService{PointsRepository: repo, publisher: publisher, logger: logger}
}

func (s *PointsService) Create(ctx context.Context, in model.NewPoints) (*model.Points, error) {
	p, err := s.PointsRepository.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to award points: %w", err)
	}
	publish(ctx, s.publisher, s.logger, queue.NewEvent(queue.EventPointsAwarded, p.UserID, p.ContestID, p))
	return p, nil
}
