package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/taskboard/taskboard/internal/apperr"
	"github.com/taskboard/taskboard/internal/domain/entity"
	"github.com/taskboard/taskboard/internal/service"
	"go.uber.org/zap"
)

// ReviewRepository implements service.ReviewRepository over SQLite
type ReviewRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB, logger *zap.Logger) service.ReviewRepository {
	return &ReviewRepository{db: db, logger: logger}
}

const reviewSelect = `
	SELECT r.id, r.task_id, r.reviewer_id, r.reviewer_type, r.rating,
		r.feedback, r.reply, r.replied_at, r.created_at, r.updated_at,
		COALESCE(u.name, ''), COALESCE(u.email, '')
	FROM reviews r
	LEFT JOIN users u ON u.id = r.reviewer_id
`

// Create inserts a new review
func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (
			task_id, reviewer_id, reviewer_type, rating, feedback,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		review.TaskID, review.ReviewerID, review.ReviewerType,
		review.Rating, review.Feedback,
		review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create review",
			zap.Int64("task_id", review.TaskID),
			zap.Int64("reviewer_id", review.ReviewerID),
			zap.Error(err))
		return apperr.Store("create review", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperr.Store("create review", err)
	}
	review.ID = id
	return nil
}

// GetByID retrieves a review with reviewer display fields joined
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*entity.Review, error) {
	review, err := scanReview(r.db.QueryRowContext(ctx, reviewSelect+` WHERE r.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get review", zap.Int64("id", id), zap.Error(err))
		return nil, apperr.Store("get review", err)
	}
	return review, nil
}

// GetByTaskAndReviewer retrieves the one review a reviewer may hold on
// a task, if any
func (r *ReviewRepository) GetByTaskAndReviewer(ctx context.Context, taskID, reviewerID int64) (*entity.Review, error) {
	review, err := scanReview(r.db.QueryRowContext(ctx,
		reviewSelect+` WHERE r.task_id = ? AND r.reviewer_id = ?`, taskID, reviewerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get review by task and reviewer",
			zap.Int64("task_id", taskID),
			zap.Int64("reviewer_id", reviewerID),
			zap.Error(err))
		return nil, apperr.Store("get review", err)
	}
	return review, nil
}

// ListByTask returns all reviews for a task, newest first
func (r *ReviewRepository) ListByTask(ctx context.Context, taskID int64) ([]entity.Review, error) {
	rows, err := r.db.QueryContext(ctx,
		reviewSelect+` WHERE r.task_id = ? ORDER BY r.created_at DESC`, taskID)
	if err != nil {
		r.logger.Error("Failed to list reviews", zap.Int64("task_id", taskID), zap.Error(err))
		return nil, apperr.Store("list reviews", err)
	}
	defer rows.Close()

	var reviews []entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, apperr.Store("list reviews", fmt.Errorf("scan review: %w", err))
		}
		reviews = append(reviews, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("list reviews", err)
	}
	return reviews, nil
}

// Update amends rating and feedback in place
func (r *ReviewRepository) Update(ctx context.Context, id int64, rating int, feedback string) error {
	query := `UPDATE reviews SET rating = ?, feedback = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, rating, feedback, id)
	if err != nil {
		r.logger.Error("Failed to update review", zap.Int64("id", id), zap.Error(err))
		return apperr.Store("update review", err)
	}
	return nil
}

// Delete removes a review and any reply it carried
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete review", zap.Int64("id", id), zap.Error(err))
		return apperr.Store("delete review", err)
	}
	return nil
}

// SetReply writes reply and replied_at together in one statement
func (r *ReviewRepository) SetReply(ctx context.Context, id int64, reply string, repliedAt time.Time) error {
	query := `UPDATE reviews SET reply = ?, replied_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, reply, repliedAt, id)
	if err != nil {
		r.logger.Error("Failed to set reply", zap.Int64("id", id), zap.Error(err))
		return apperr.Store("set reply", err)
	}
	return nil
}

// ClearReply clears reply and replied_at together in one statement
func (r *ReviewRepository) ClearReply(ctx context.Context, id int64) error {
	query := `UPDATE reviews SET reply = NULL, replied_at = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to clear reply", zap.Int64("id", id), zap.Error(err))
		return apperr.Store("clear reply", err)
	}
	return nil
}

func scanReview(row scanner) (*entity.Review, error) {
	var review entity.Review
	var reply sql.NullString
	var repliedAt sql.NullTime

	err := row.Scan(
		&review.ID, &review.TaskID, &review.ReviewerID, &review.ReviewerType,
		&review.Rating, &review.Feedback, &reply, &repliedAt,
		&review.CreatedAt, &review.UpdatedAt,
		&review.ReviewerName, &review.ReviewerEmail,
	)
	if err != nil {
		return nil, err
	}

	if reply.Valid {
		review.Reply = reply.String
	}
	if repliedAt.Valid {
		review.RepliedAt = &repliedAt.Time
	}
	return &review, nil
}

// Verify interface compliance
var _ service.ReviewRepository = (*ReviewRepository)(nil)
