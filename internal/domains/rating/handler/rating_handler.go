package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bookmodel "bookshelves-backend/internal/domains/book/model"
	"bookshelves-backend/internal/domains/rating/model"
	"bookshelves-backend/internal/domains/rating/service"
	"bookshelves-backend/internal/shared/middleware"
	"bookshelves-backend/internal/shared/response"
)

// =====================================================
// RATING HANDLER
// =====================================================

type RatingHandler struct {
	ratingService service.ServiceInterface
}

func NewRatingHandler(ratingService service.ServiceInterface) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// CreateRating creates the caller's rating for a book
// POST /api/v1/books/:id/ratings
func (h *RatingHandler) CreateRating(c *gin.Context) {
	// Step 1: Get caller ID from JWT
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Parse book ID
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	// Step 3: Bind request body
	var req model.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 4: Call service
	rating, err := h.ratingService.CreateRating(c.Request.Context(), callerID, bookID, req)
	if err != nil {
		statusCode, errCode := mapRatingError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 5: Return success
	response.Success(c, http.StatusCreated, rating)
}

// GetRating gets a rating by ID
// GET /api/v1/ratings/:id
func (h *RatingHandler) GetRating(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	ratingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid rating ID")
		return
	}

	rating, err := h.ratingService.ShowRating(c.Request.Context(), callerID, ratingID)
	if err != nil {
		statusCode, errCode := mapRatingError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, rating)
}

// UpdateRating replaces the caller's rating content
// PUT /api/v1/ratings/:id
func (h *RatingHandler) UpdateRating(c *gin.Context) {
	// Step 1: Get caller ID from JWT
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Parse rating ID
	ratingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid rating ID")
		return
	}

	// Step 3: Bind request body
	var req model.UpdateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 4: Call service
	rating, err := h.ratingService.UpdateRating(c.Request.Context(), callerID, ratingID, req)
	if err != nil {
		statusCode, errCode := mapRatingError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 5: Return success
	response.Success(c, http.StatusOK, rating)
}

// DeleteRating removes the caller's rating
// DELETE /api/v1/ratings/:id
func (h *RatingHandler) DeleteRating(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	ratingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid rating ID")
		return
	}

	if err := h.ratingService.DeleteRating(c.Request.Context(), callerID, ratingID); err != nil {
		statusCode, errCode := mapRatingError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Rating deleted successfully",
	})
}

// mapRatingError maps a rating error to an HTTP status code. Creating a
// rating can also surface a book error when the target book does not exist.
func mapRatingError(err error) (int, string) {
	if ratingErr, ok := err.(*model.RatingError); ok {
		switch ratingErr.Code {
		case model.ErrCodeRatingNotFound:
			return http.StatusNotFound, ratingErr.Code
		case model.ErrCodeInvalidRating, model.ErrCodeAlreadyRated:
			return http.StatusBadRequest, ratingErr.Code
		case model.ErrCodeNotOwner:
			return http.StatusForbidden, ratingErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	if bookErr, ok := err.(*bookmodel.BookError); ok {
		switch bookErr.Code {
		case bookmodel.ErrCodeBookNotFound:
			return http.StatusNotFound, bookErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
