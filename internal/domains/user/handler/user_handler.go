package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bookmodel "bookshelves-backend/internal/domains/book/model"
	"bookshelves-backend/internal/domains/user/model"
	"bookshelves-backend/internal/domains/user/service"
	"bookshelves-backend/internal/shared/middleware"
	"bookshelves-backend/internal/shared/response"
)

// =====================================================
// USER HANDLER
// =====================================================

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// =====================================================
// AUTH ENDPOINTS
// =====================================================

// Register creates an account
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	// Step 1: Bind request body
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 2: Call service
	profile, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 3: Return success
	response.Success(c, http.StatusCreated, profile)
}

// Login verifies credentials and issues a JWT pair
// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	tokens, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, tokens)
}

// Refresh exchanges a refresh token for a fresh JWT pair
// POST /api/v1/auth/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	tokens, err := h.userService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, tokens)
}

// =====================================================
// ACCOUNT ENDPOINTS
// =====================================================

// GetMe returns the caller's own account
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	user, err := h.userService.GetAccount(c.Request.Context(), callerID)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, user)
}

// GetProfile returns a user's public identity
// GET /api/v1/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// SearchUsers searches users by username
// GET /api/v1/users/search?q=phrase
func (h *UserHandler) SearchUsers(c *gin.Context) {
	profiles, err := h.userService.SearchUsers(c.Request.Context(), c.Query("q"))
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, profiles)
}

// ChangePassword replaces the caller's password
// PUT /api/v1/users/me/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	// Step 1: Get caller ID from JWT
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Bind request body
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 3: Call service
	if err := h.userService.ChangePassword(c.Request.Context(), callerID, req); err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 4: Return success
	response.Success(c, http.StatusOK, gin.H{
		"message": "Password changed successfully",
	})
}

// TogglePrivacy flips the caller's private-profile flag
// PATCH /api/v1/users/me/privacy
func (h *UserHandler) TogglePrivacy(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	user, err := h.userService.TogglePrivacy(c.Request.Context(), callerID)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, user)
}

// DeleteUser removes an account
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), callerID, userID); err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

// =====================================================
// NOW READING ENDPOINTS
// =====================================================

// SetNowReading marks a book as the caller's current read
// PUT /api/v1/users/me/now-reading/:bookId
func (h *UserHandler) SetNowReading(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	user, err := h.userService.SetNowReading(c.Request.Context(), callerID, bookID)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, user)
}

// ClearNowReading clears the caller's current read
// DELETE /api/v1/users/me/now-reading
func (h *UserHandler) ClearNowReading(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	user, err := h.userService.ClearNowReading(c.Request.Context(), callerID)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, user)
}

// =====================================================
// USER-SCOPED VIEW ENDPOINTS
// =====================================================

// GetLibrary lists a user's shelves
// GET /api/v1/users/:id/shelves
func (h *UserHandler) GetLibrary(c *gin.Context) {
	// Step 1: Get caller ID from JWT
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Parse user ID
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	// Step 3: Call service
	shelves, err := h.userService.GetLibrary(c.Request.Context(), callerID, userID)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 4: Return success
	response.Success(c, http.StatusOK, shelves)
}

// UserRatings lists a user's ratings
// GET /api/v1/users/:id/ratings
func (h *UserHandler) UserRatings(c *gin.Context) {
	// Step 1: Get caller ID from JWT
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Parse user ID
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	// Step 3: Call service
	ratings, err := h.userService.UserRatings(c.Request.Context(), callerID, userID)
	if err != nil {
		statusCode, errCode := mapUserError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 4: Return success
	response.Success(c, http.StatusOK, ratings)
}

// mapUserError maps a user error to an HTTP status code. Setting the current
// read can also surface a book error when the book does not exist.
func mapUserError(err error) (int, string) {
	if userErr, ok := err.(*model.UserError); ok {
		switch userErr.Code {
		case model.ErrCodeUserNotFound:
			return http.StatusNotFound, userErr.Code
		case model.ErrCodeUsernameTaken, model.ErrCodeEmailTaken:
			return http.StatusConflict, userErr.Code
		case model.ErrCodeWrongCredential:
			return http.StatusUnauthorized, userErr.Code
		case model.ErrCodeAccessDenied:
			return http.StatusForbidden, userErr.Code
		case model.ErrCodePasswordRepeat, model.ErrCodeInvalidRequest:
			return http.StatusBadRequest, userErr.Code
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
