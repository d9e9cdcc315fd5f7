package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/customer-directory/internal/application"
	"github.com/oksasatya/customer-directory/internal/domain/entity"
	"github.com/oksasatya/customer-directory/pkg/response"
	"github.com/oksasatya/customer-directory/pkg/validation"
)

// DefaultMaxImageBytes bounds profile image uploads when no limit is configured.
const DefaultMaxImageBytes = 5 << 20

type CustomerHandler struct {
	Svc           *application.CustomerService
	Auth          *application.AuthService
	Logger        *logrus.Logger
	MaxImageBytes int64
}

func NewCustomerHandler(svc *application.CustomerService, auth *application.AuthService, logger *logrus.Logger, maxImageBytes int64) *CustomerHandler {
	if maxImageBytes <= 0 {
		maxImageBytes = DefaultMaxImageBytes
	}
	return &CustomerHandler{Svc: svc, Auth: auth, Logger: logger, MaxImageBytes: maxImageBytes}
}

type registerRequest struct {
	Name     string        `json:"name" binding:"required"`
	Email    string        `json:"email" binding:"required,email"`
	Password string        `json:"password" binding:"required,pwd"`
	Age      int           `json:"age" binding:"gte=0,lte=150"`
	Gender   entity.Gender `json:"gender" binding:"required,gender"`
}

// updateRequest fields are optional; an absent field is left unchanged.
type updateRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1"`
	Email *string `json:"email" binding:"omitempty,email"`
	Age   *int    `json:"age" binding:"omitempty,gte=0,lte=150"`
}

func (h *CustomerHandler) customerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid customer id", map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// Register POST /api/v1/customers
func (h *CustomerHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	v, err := h.Svc.Add(c.Request.Context(), application.AddCustomerInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Gender:   req.Gender,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}

	token, exp, err := h.Auth.IssueToken(v.Email)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	setAuthorization(c, token)
	response.Success(c, http.StatusOK, v, "customer registered", map[string]any{"expires_at": exp})
}

// List GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	views, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, views, "customers", map[string]any{"count": len(views)})
}

// Get GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := h.customerID(c)
	if !ok {
		return
	}
	v, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, v, "customer", nil)
}

// Update PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.customerID(c)
	if !ok {
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	in := application.UpdateCustomerInput{Name: req.Name, Email: req.Email, Age: req.Age}
	if err := h.Svc.UpdateByID(c.Request.Context(), id, in); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"updated": true}, "customer updated", nil)
}

// Delete DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.customerID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteByID(c.Request.Context(), id); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "customer deleted", nil)
}

// UploadProfileImage POST /api/v1/customers/:id/profile-image (multipart field "file")
func (h *CustomerHandler) UploadProfileImage(c *gin.Context) {
	id, ok := h.customerID(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file is required", nil)
		return
	}
	if fh.Size > h.MaxImageBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "file too large", map[string]any{"max_bytes": h.MaxImageBytes})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot open file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, h.MaxImageBytes+1))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read file", nil)
		return
	}
	if int64(len(data)) > h.MaxImageBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "file too large", map[string]any{"max_bytes": h.MaxImageBytes})
		return
	}

	if err := h.Svc.SetProfileImage(c.Request.Context(), id, data); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"uploaded": true, "bytes": len(data)}, "profile image uploaded", nil)
}

// GetProfileImage GET /api/v1/customers/:id/profile-image
func (h *CustomerHandler) GetProfileImage(c *gin.Context) {
	id, ok := h.customerID(c)
	if !ok {
		return
	}
	data, err := h.Svc.GetProfileImage(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	c.Data(http.StatusOK, "image/jpeg", data)
}

// Search GET /api/v1/customers/search?q=&size=
func (h *CustomerHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	views, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, views, "search results", map[string]any{"count": len(views)})
}
