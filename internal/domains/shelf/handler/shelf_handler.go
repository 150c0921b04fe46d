package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bookmodel "bookshelves-backend/internal/domains/book/model"
	"bookshelves-backend/internal/domains/shelf/model"
	"bookshelves-backend/internal/domains/shelf/service"
	"bookshelves-backend/internal/shared/middleware"
	"bookshelves-backend/internal/shared/response"
)

// =====================================================
// SHELF HANDLER
// =====================================================

type ShelfHandler struct {
	shelfService service.ServiceInterface
}

func NewShelfHandler(shelfService service.ServiceInterface) *ShelfHandler {
	return &ShelfHandler{
		shelfService: shelfService,
	}
}

// CreateShelf creates a shelf for the caller
// POST /api/v1/shelves
func (h *ShelfHandler) CreateShelf(c *gin.Context) {
	// Step 1: Get caller ID from JWT
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Bind request body
	var req model.CreateShelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 3: Call service
	shelf, err := h.shelfService.CreateOwnShelf(c.Request.Context(), callerID, req)
	if err != nil {
		statusCode, errCode := mapShelfError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 4: Return success
	response.Success(c, http.StatusCreated, shelf)
}

// GetShelf gets a shelf by ID
// GET /api/v1/shelves/:id
func (h *ShelfHandler) GetShelf(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	shelfID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid shelf ID")
		return
	}

	shelf, err := h.shelfService.ShowShelf(c.Request.Context(), callerID, shelfID)
	if err != nil {
		statusCode, errCode := mapShelfError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, shelf)
}

// RenameShelf renames the caller's shelf
// PUT /api/v1/shelves/:id
func (h *ShelfHandler) RenameShelf(c *gin.Context) {
	// Step 1: Get caller ID from JWT
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Parse shelf ID
	shelfID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid shelf ID")
		return
	}

	// Step 3: Bind request body
	var req model.RenameShelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 4: Call service
	shelf, err := h.shelfService.RenameShelf(c.Request.Context(), callerID, shelfID, req)
	if err != nil {
		statusCode, errCode := mapShelfError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 5: Return success
	response.Success(c, http.StatusOK, shelf)
}

// DeleteShelf removes the caller's shelf
// DELETE /api/v1/shelves/:id
func (h *ShelfHandler) DeleteShelf(c *gin.Context) {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	shelfID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid shelf ID")
		return
	}

	if err := h.shelfService.DeleteShelf(c.Request.Context(), callerID, shelfID); err != nil {
		statusCode, errCode := mapShelfError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Shelf deleted successfully",
	})
}

// AddBook places a book on the caller's shelf
// POST /api/v1/shelves/:id/books/:bookId
func (h *ShelfHandler) AddBook(c *gin.Context) {
	// Step 1: Get caller ID from JWT
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Parse IDs
	shelfID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid shelf ID")
		return
	}
	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	// Step 3: Call service
	shelf, err := h.shelfService.AddBookToShelf(c.Request.Context(), callerID, shelfID, bookID)
	if err != nil {
		statusCode, errCode := mapShelfError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 4: Return success
	response.Success(c, http.StatusOK, shelf)
}

// RemoveBook takes a book off the caller's shelf
// DELETE /api/v1/shelves/:id/books/:bookId
func (h *ShelfHandler) RemoveBook(c *gin.Context) {
	// Step 1: Get caller ID from JWT
	callerID, ok := middleware.CallerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	// Step 2: Parse IDs
	shelfID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid shelf ID")
		return
	}
	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	// Step 3: Call service
	shelf, err := h.shelfService.RemoveBookFromShelf(c.Request.Context(), callerID, shelfID, bookID)
	if err != nil {
		statusCode, errCode := mapShelfError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 4: Return success
	response.Success(c, http.StatusOK, shelf)
}

// mapShelfError maps a shelf error to an HTTP status code. Adding a book can
// also surface a book error when the book does not exist.
func mapShelfError(err error) (int, string) {
	if shelfErr, ok := err.(*model.ShelfError); ok {
		switch shelfErr.Code {
		case model.ErrCodeShelfNotFound, model.ErrCodeBookNotOnShelf:
			return http.StatusNotFound, shelfErr.Code
		case model.ErrCodeNotOwner, model.ErrCodePermanentShelf, model.ErrCodePrivateShelf:
			return http.StatusForbidden, shelfErr.Code
		case model.ErrCodeNameTaken:
			return http.StatusConflict, shelfErr.Code
		case model.ErrCodeBookAlreadyShelf, model.ErrCodeInvalidRequest:
			return http.StatusBadRequest, shelfErr.Code
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
