package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/service"
	"go.uber.org/zap"
)

// ReviewHandler serves review submission, amendment and replies
type ReviewHandler struct {
	reviews service.ReviewService
	logger  *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviews service.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

type reviewRequest struct {
	Rating   *int   `json:"rating" binding:"required"`
	Feedback string `json:"feedback"`
}

// Submit handles POST /tasks/:id/reviews
func (h *ReviewHandler) Submit(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating is required"})
		return
	}

	session, _ := auth.SessionFrom(c)
	review, err := h.reviews.Submit(c.Request.Context(), taskID, session, *req.Rating, req.Feedback)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// ListByTask handles GET /tasks/:id/reviews
func (h *ReviewHandler) ListByTask(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}

	reviews, err := h.reviews.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// Amend handles PUT /reviews/:id
func (h *ReviewHandler) Amend(c *gin.Context) {
	reviewID, ok := pathID(c)
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating is required"})
		return
	}

	session, _ := auth.SessionFrom(c)
	review, err := h.reviews.Amend(c.Request.Context(), reviewID, session, *req.Rating, req.Feedback)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// Delete handles DELETE /reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, ok := pathID(c)
	if !ok {
		return
	}

	session, _ := auth.SessionFrom(c)
	if err := h.reviews.Delete(c.Request.Context(), reviewID, session); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type replyRequest struct {
	Reply string `json:"reply" binding:"required"`
}

// Reply handles POST /reviews/:id/reply
func (h *ReviewHandler) Reply(c *gin.Context) {
	reviewID, ok := pathID(c)
	if !ok {
		return
	}

	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reply is required"})
		return
	}

	session, _ := auth.SessionFrom(c)
	review, err := h.reviews.Reply(c.Request.Context(), reviewID, session, req.Reply)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}

// DeleteReply handles DELETE /reviews/:id/reply
func (h *ReviewHandler) DeleteReply(c *gin.Context) {
	reviewID, ok := pathID(c)
	if !ok {
		return
	}

	session, _ := auth.SessionFrom(c)
	review, err := h.reviews.DeleteReply(c.Request.Context(), reviewID, session)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}
