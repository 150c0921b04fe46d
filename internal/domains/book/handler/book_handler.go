package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookshelves-backend/internal/domains/book/model"
	"bookshelves-backend/internal/domains/book/service"
	"bookshelves-backend/internal/shared/middleware"
	"bookshelves-backend/internal/shared/response"
)

// =====================================================
// BOOK HANDLER
// =====================================================

type BookHandler struct {
	bookService service.ServiceInterface
}

func NewBookHandler(bookService service.ServiceInterface) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// =====================================================
// CATALOGUE ENDPOINTS
// =====================================================

// AddBook adds a book to the catalogue
// POST /api/v1/books
func (h *BookHandler) AddBook(c *gin.Context) {
	// Step 1: Bind request body
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 2: Call service
	book, err := h.bookService.AddBook(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 3: Return success
	response.Success(c, http.StatusCreated, book)
}

// GetBook gets a book by ID
// GET /api/v1/books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	book, err := h.bookService.GetBook(c.Request.Context(), bookID)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, book)
}

// UpdateBook edits a book's editorial fields
// PUT /api/v1/books/:id
func (h *BookHandler) UpdateBook(c *gin.Context) {
	// Step 1: Parse book ID
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	// Step 2: Bind request body
	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 3: Call service
	book, err := h.bookService.UpdateBook(c.Request.Context(), bookID, req)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 4: Return success
	response.Success(c, http.StatusOK, book)
}

// DeleteBook removes a book from the catalogue
// DELETE /api/v1/books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid book ID")
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), bookID); err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Book deleted successfully",
	})
}

// =====================================================
// SEARCH & LISTING ENDPOINTS
// =====================================================

// SearchBooks searches the catalogue by phrase
// GET /api/v1/books/search?q=phrase
func (h *BookHandler) SearchBooks(c *gin.Context) {
	books, err := h.bookService.SearchBooks(c.Request.Context(), c.Query("q"))
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, books)
}

// AuthorBooks lists an author's books
// GET /api/v1/books/author/:author
func (h *BookHandler) AuthorBooks(c *gin.Context) {
	books, err := h.bookService.AuthorBooks(c.Request.Context(), c.Param("author"))
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, books)
}

// TopOfGenre lists the highest-rated books of a genre
// GET /api/v1/books/top/:genre
func (h *BookHandler) TopOfGenre(c *gin.Context) {
	books, err := h.bookService.TopOfGenre(c.Request.Context(), c.Param("genre"))
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, books)
}

// BookRatings lists a book's ratings
// GET /api/v1/books/:id/ratings
func (h *BookHandler) BookRatings(c *gin.Context) {
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

	// Step 3: Call service
	ratings, err := h.bookService.BookRatings(c.Request.Context(), callerID, bookID)
	if err != nil {
		statusCode, errCode := mapBookError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	// Step 4: Return success
	response.Success(c, http.StatusOK, ratings)
}

// mapBookError maps a book error to an HTTP status code
func mapBookError(err error) (int, string) {
	if bookErr, ok := err.(*model.BookError); ok {
		switch bookErr.Code {
		case model.ErrCodeBookNotFound, model.ErrCodeNoResults:
			return http.StatusNotFound, bookErr.Code
		case model.ErrCodeInvalidRequest:
			return http.StatusBadRequest, bookErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
