package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harshmohod/land-verification/internal/shared/server/middleware"
	"github.com/Harshmohod/land-verification/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches the unauthenticated routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/register", h.register)
	rg.POST("/login", h.login)
}

// RegisterRoutes attaches the authenticated routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.list)
	rg.GET("/reviewers", h.listReviewers)
}

type registerRequest struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Region   string `json:"region"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidArgument, "invalid request body", nil)
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), RegisterInput{
		Role:     req.Role,
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Region:   req.Region,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateUser):
			respond.Error(c, http.StatusBadRequest, respond.CodeDuplicateUser, "username already taken", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, respond.CodeInvalidArgument, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to register user", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{"user": toResponse(user)})
}

type loginRequest struct {
	Role     string `json:"role"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeInvalidArgument, "invalid request body", nil)
		return
	}

	user, token, err := h.Svc.Login(c.Request.Context(), req.Role, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, respond.CodeInvalidCredentials, "invalid credentials", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to log in", nil)
		return
	}

	respond.OK(c, gin.H{
		"user":  toResponse(user),
		"token": token,
	})
}

func (h *Handler) list(c *gin.Context) {
	if middleware.RoleFromContext(c) != RoleAdmin {
		respond.Error(c, http.StatusForbidden, respond.CodeForbidden, "access denied", nil)
		return
	}

	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to list users", nil)
		return
	}
	respond.OK(c, gin.H{"users": toResponses(list)})
}

func (h *Handler) listReviewers(c *gin.Context) {
	list, err := h.Svc.ListReviewers(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to list reviewers", nil)
		return
	}
	respond.OK(c, gin.H{"reviewers": toResponses(list)})
}
