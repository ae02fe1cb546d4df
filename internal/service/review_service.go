package service

import (
	"context"
	"strings"
	"time"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/domain/authz"
	"github.com/taskboard/taskboard/internal/domain/entity"
	"go.uber.org/zap"
)

// ReviewService manages the review/reply ledger: one review per
// reviewer per task, replies owned by the reviewed task's employee.
type ReviewService interface {
	Submit(ctx context.Context, taskID int64, caller authz.Session, rating int, feedback string) (*entity.Review, error)
	Amend(ctx context.Context, reviewID int64, caller authz.Session, rating int, feedback string) (*entity.Review, error)
	Delete(ctx context.Context, reviewID int64, caller authz.Session) error
	Reply(ctx context.Context, reviewID int64, caller authz.Session, text string) (*entity.Review, error)
	DeleteReply(ctx context.Context, reviewID int64, caller authz.Session) (*entity.Review, error)
	ListByTask(ctx context.Context, taskID int64) ([]entity.Review, error)
}

type reviewService struct {
	reviews ReviewRepository
	tasks   TaskRepository
	logger  *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviews ReviewRepository, tasks TaskRepository, logger *zap.Logger) ReviewService {
	return &reviewService{reviews: reviews, tasks: tasks, logger: logger}
}

func validRating(rating int) bool {
	return rating >= entity.RatingMin && rating <= entity.RatingMax
}

// Submit creates a new review for a task. A second submission by the
// same reviewer conflicts; callers should amend the existing review.
func (s *reviewService) Submit(ctx context.Context, taskID int64, caller authz.Session, rating int, feedback string) (*entity.Review, error) {
	if !validRating(rating) {
		return nil, apperr.Validation("rating must be between %d and %d", entity.RatingMin, entity.RatingMax)
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("task %d not found", taskID)
	}

	existing, err := s.reviews.GetByTaskAndReviewer(ctx, taskID, caller.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("you have already reviewed this task; amend your existing review instead")
	}

	now := time.Now()
	review := &entity.Review{
		TaskID:       taskID,
		ReviewerID:   caller.UserID,
		ReviewerType: reviewerType(caller),
		Rating:       rating,
		Feedback:     strings.TrimSpace(feedback),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("Review submitted",
		zap.Int64("id", review.ID),
		zap.Int64("task_id", taskID),
		zap.Int64("reviewer_id", caller.UserID),
		zap.Int("rating", rating))
	return s.reviews.GetByID(ctx, review.ID)
}

// reviewerType denormalizes the reviewer's role at submission time
func reviewerType(s authz.Session) string {
	if s.IsAdmin() {
		return "admin"
	}
	return "employee"
}

// Amend updates rating and feedback on the caller's own review
func (s *reviewService) Amend(ctx context.Context, reviewID int64, caller authz.Session, rating int, feedback string) (*entity.Review, error) {
	if !validRating(rating) {
		return nil, apperr.Validation("rating must be between %d and %d", entity.RatingMin, entity.RatingMax)
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, apperr.NotFound("review %d not found", reviewID)
	}
	if !authz.CanAmendReview(caller, review.ReviewerID) {
		return nil, apperr.Forbidden("you may only amend your own reviews")
	}

	if err := s.reviews.Update(ctx, reviewID, rating, strings.TrimSpace(feedback)); err != nil {
		return nil, err
	}

	s.logger.Info("Review amended", zap.Int64("id", reviewID), zap.Int("rating", rating))
	return s.reviews.GetByID(ctx, reviewID)
}

// Delete removes the caller's own review, reply included
func (s *reviewService) Delete(ctx context.Context, reviewID int64, caller authz.Session) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return apperr.NotFound("review %d not found", reviewID)
	}
	if !authz.CanAmendReview(caller, review.ReviewerID) {
		return apperr.Forbidden("you may only delete your own reviews")
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.logger.Info("Review deleted", zap.Int64("id", reviewID))
	return nil
}

// Reply attaches the task owner's response to a review. reply and
// replied_at are written together in a single statement.
func (s *reviewService) Reply(ctx context.Context, reviewID int64, caller authz.Session, text string) (*entity.Review, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("reply must not be empty")
	}

	review, task, err := s.reviewWithTask(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !authz.CanReply(caller, task.EmployeeID) {
		return nil, apperr.Forbidden("only the task's owner may reply to its reviews")
	}

	if err := s.reviews.SetReply(ctx, reviewID, text, time.Now()); err != nil {
		return nil, err
	}

	s.logger.Info("Reply added", zap.Int64("review_id", reviewID), zap.Int64("task_id", review.TaskID))
	return s.reviews.GetByID(ctx, reviewID)
}

// DeleteReply clears reply and replied_at together
func (s *reviewService) DeleteReply(ctx context.Context, reviewID int64, caller authz.Session) (*entity.Review, error) {
	review, task, err := s.reviewWithTask(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !authz.CanReply(caller, task.EmployeeID) {
		return nil, apperr.Forbidden("only the task's owner may remove its replies")
	}

	if err := s.reviews.ClearReply(ctx, reviewID); err != nil {
		return nil, err
	}

	s.logger.Info("Reply removed", zap.Int64("review_id", reviewID), zap.Int64("task_id", review.TaskID))
	return s.reviews.GetByID(ctx, reviewID)
}

// ListByTask returns all reviews for a task; world-readable within the
// authenticated set
func (s *reviewService) ListByTask(ctx context.Context, taskID int64) ([]entity.Review, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("task %d not found", taskID)
	}
	return s.reviews.ListByTask(ctx, taskID)
}

// reviewWithTask loads a review and its task, translating missing rows
// into not-found errors
func (s *reviewService) reviewWithTask(ctx context.Context, reviewID int64) (*entity.Review, *entity.Task, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, nil, err
	}
	if review == nil {
		return nil, nil, apperr.NotFound("review %d not found", reviewID)
	}

	task, err := s.tasks.GetByID(ctx, review.TaskID)
	if err != nil {
		return nil, nil, err
	}
	if task == nil {
		return nil, nil, apperr.NotFound("task %d not found", review.TaskID)
	}
	return review, task, nil
}
