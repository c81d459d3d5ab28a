package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"bookshelf/internal/domain"
	"bookshelf/internal/repository"
	"bookshelf/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users   service.UserService
	tokens  service.TokenService
	catalog service.CatalogService
	reviews service.ReviewService
	logger  *logrus.Logger
}

func NewHandler(users service.UserService, tokens service.TokenService, catalog service.CatalogService, reviews service.ReviewService, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:   users,
		tokens:  tokens,
		catalog: catalog,
		reviews: reviews,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(), requestIDMiddleware())

	router.GET("/", h.listBooks)
	router.GET("/isbn/:isbn", h.getBookByISBN)
	router.GET("/author/:author", h.getBooksByAuthor)
	router.GET("/title/:title", h.getBooksByTitle)
	router.GET("/review/:isbn", h.listReviews)

	customer := router.Group("/customer")
	{
		customer.POST("/register", h.register)
		customer.POST("/login", h.login)

		authed := customer.Group("/auth", h.authRequired())
		{
			authed.POST("/add-review/:isbn", h.addReview)
			authed.PUT("/modify-review/:isbn", h.modifyReview)
			authed.DELETE("/delete-review/:isbn", h.deleteReview)
		}
	}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type reviewRequest struct {
	Review string `json:"review" binding:"required"`
}

type BookResponse struct {
	ISBN    string           `json:"isbn"`
	Title   string           `json:"title"`
	Author  string           `json:"author"`
	Reviews map[int64]string `json:"reviews"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists"})
			return
		}
		h.internalError(c, "register user", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "id": user.ID})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.internalError(c, "authenticate user", err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.internalError(c, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) listBooks(c *gin.Context) {
	books, err := h.catalog.ListBooks(c.Request.Context())
	if err != nil {
		h.internalError(c, "list books", err)
		return
	}
	c.JSON(http.StatusOK, booksToResponse(books))
}

func (h *Handler) getBookByISBN(c *gin.Context) {
	book, err := h.catalog.GetByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		h.internalError(c, "get book by isbn", err)
		return
	}
	c.JSON(http.StatusOK, bookToResponse(*book))
}

func (h *Handler) getBooksByAuthor(c *gin.Context) {
	author := c.Param("author")
	books, err := h.catalog.FindByAuthor(c.Request.Context(), author)
	if err != nil {
		h.internalError(c, "find books by author", err)
		return
	}
	if len(books) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no books found by author " + author})
		return
	}
	c.JSON(http.StatusOK, booksToResponse(books))
}

func (h *Handler) getBooksByTitle(c *gin.Context) {
	title := c.Param("title")
	books, err := h.catalog.FindByTitle(c.Request.Context(), title)
	if err != nil {
		h.internalError(c, "find books by title", err)
		return
	}
	if len(books) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no books found with title " + title})
		return
	}
	c.JSON(http.StatusOK, booksToResponse(books))
}

func (h *Handler) listReviews(c *gin.Context) {
	reviews, err := h.reviews.ListReviews(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		if errors.Is(err, service.ErrNoReviews) {
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found or no reviews available"})
			return
		}
		h.internalError(c, "list reviews", err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) addReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.reviews.AddReview(c.Request.Context(), c.Param("isbn"), c.GetInt64(userIDKey), req.Review)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
			return
		}
		h.internalError(c, "add review", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review added successfully"})
}

func (h *Handler) modifyReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.reviews.ModifyReview(c.Request.Context(), c.Param("isbn"), c.GetInt64(userIDKey), req.Review)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		case errors.Is(err, repository.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		default:
			h.internalError(c, "modify review", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review modified successfully"})
}

func (h *Handler) deleteReview(c *gin.Context) {
	err := h.reviews.DeleteReview(c.Request.Context(), c.Param("isbn"), c.GetInt64(userIDKey))
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		h.internalError(c, "delete review", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// internalError logs the fault server-side and answers with a generic 500.
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.logger.WithField("request_id", c.GetString(requestIDKey)).WithError(err).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func bookToResponse(book domain.Book) BookResponse {
	resp := BookResponse{
		ISBN:    book.ISBN,
		Title:   book.Title,
		Author:  book.Author,
		Reviews: book.Reviews,
	}
	if resp.Reviews == nil {
		resp.Reviews = map[int64]string{}
	}
	return resp
}

func booksToResponse(books []domain.Book) []BookResponse {
	resp := make([]BookResponse, len(books))
	for i := range books {
		resp[i] = bookToResponse(books[i])
	}
	return resp
}
