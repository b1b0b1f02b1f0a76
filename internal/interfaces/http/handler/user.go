package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/orders/backend/internal/application/identity"
	"github.com/orders/backend/internal/domain/shared"
	"github.com/orders/backend/internal/interfaces/http/middleware"
)

// UserHandler serves registration, confirmation, login and the caller's
// delivery contacts.
type UserHandler struct {
	BaseHandler
	userService    *identityapp.UserService
	contactService *identityapp.ContactService
}

// NewUserHandler creates a user handler
func NewUserHandler(userService *identityapp.UserService, contactService *identityapp.ContactService) *UserHandler {
	return &UserHandler{
		userService:    userService,
		contactService: contactService,
	}
}

// RegisterRoutes registers user routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	{
		user.POST("/register", h.Register)
		user.GET("/register/confirm", h.Confirm)
		user.POST("/register/confirm", h.Confirm)
		user.POST("/login", h.Login)
		user.GET("/details", middleware.RequireAuth(), h.Details)

		contact := user.Group("/contact", middleware.RequireAuth())
		{
			contact.GET("", h.ListContacts)
			contact.POST("", h.CreateContact)
			contact.PUT("", h.UpdateContact)
			contact.DELETE("", h.DeleteContacts)
		}
	}
}

// Register creates an inactive account and mails the confirmation token
func (h *UserHandler) Register(c *gin.Context) {
	var input identityapp.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadJSON(c)
		return
	}

	if _, err := h.userService.Register(c.Request.Context(), input); err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, nil)
}

// confirmRequest carries the confirmation credentials. GET passes them as
// query parameters, POST in the body.
type confirmRequest struct {
	Email string `form:"email" json:"email"`
	Token string `form:"token" json:"token"`
}

// Confirm activates an account by email and token
func (h *UserHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if c.Request.Method == http.MethodGet {
		_ = c.ShouldBindQuery(&req)
	} else if err := c.ShouldBindJSON(&req); err != nil {
		h.BadJSON(c)
		return
	}

	if err := h.userService.Confirm(c.Request.Context(), req.Email, req.Token); err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, nil)
}

// loginRequest carries login credentials
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and returns an access token
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadJSON(c)
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, map[string]any{"Token": result.Token, "expires_at": result.ExpiresAt})
}

// Details returns the caller's account
func (h *UserHandler) Details(c *gin.Context) {
	userID, _ := h.currentUser(c)
	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Data(c, user)
}

// ListContacts returns the caller's delivery contacts
func (h *UserHandler) ListContacts(c *gin.Context) {
	userID, _ := h.currentUser(c)
	contacts, err := h.contactService.List(c.Request.Context(), userID)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Data(c, contacts)
}

// CreateContact adds a delivery contact
func (h *UserHandler) CreateContact(c *gin.Context) {
	userID, _ := h.currentUser(c)

	var input identityapp.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadJSON(c)
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), userID, input)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, map[string]any{"id": contact.ID})
}

// updateContactRequest carries a contact change
type updateContactRequest struct {
	ID string `json:"id"`
	identityapp.ContactInput
}

// UpdateContact changes fields of the caller's contact
func (h *UserHandler) UpdateContact(c *gin.Context) {
	userID, _ := h.currentUser(c)

	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadJSON(c)
		return
	}
	if req.ID == "" {
		h.Fail(c, shared.ErrMissingArguments)
		return
	}
	contactID, err := uuid.Parse(req.ID)
	if err != nil {
		h.Fail(c, shared.ErrInvalidContact)
		return
	}

	if _, err := h.contactService.Update(c.Request.Context(), userID, contactID, req.ContactInput); err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, nil)
}

// deleteContactsRequest carries a comma-separated contact id list
type deleteContactsRequest struct {
	Items string `json:"items"`
}

// DeleteContacts removes contacts by id list
func (h *UserHandler) DeleteContacts(c *gin.Context) {
	userID, _ := h.currentUser(c)

	var req deleteContactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadJSON(c)
		return
	}

	deleted, err := h.contactService.Delete(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.OK(c, map[string]any{"deleted_count": deleted})
}
