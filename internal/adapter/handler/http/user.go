package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"blogsvc/internal/core/domain"
	"blogsvc/internal/core/ports"
	"blogsvc/internal/core/scope"
)

const dateLayout = "2006-01-02"

type UserHandler struct {
	userService ports.UserService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

func NewUserHandler(
	userService ports.UserService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
		metrics:     metrics,
	}
}

type UserRequest struct {
	Name      string `json:"name" example:"Jane Doe"`
	Email     string `json:"email" example:"jane@example.com"`
	Age       *int   `json:"age,omitempty" example:"30"`
	FirstName string `json:"first_name,omitempty" example:"Jane"`
	LastName  string `json:"last_name,omitempty" example:"Doe"`
	BirthDate string `json:"birth_date,omitempty" example:"1990-01-31"`
	UserType  string `json:"user_type,omitempty" example:"regular"`
	Active    *bool  `json:"active,omitempty" example:"true"`
}

type UpdateUser struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Age       *int    `json:"age,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	UserType  *string `json:"user_type,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

type UserDTO struct {
	ID        int64  `json:"id" example:"1"`
	Name      string `json:"name" example:"Jane Doe"`
	Email     string `json:"email" example:"jane@example.com"`
	Age       *int   `json:"age,omitempty" example:"30"`
	FullName  string `json:"full_name" example:"Jane Doe"`
	BirthDate string `json:"birth_date,omitempty" example:"1990-01-31"`
	UserType  string `json:"user_type" example:"regular"`
	Active    bool   `json:"active" example:"true"`
}

func toUserDTO(user *domain.User) UserDTO {
	dto := UserDTO{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Age:      user.Age,
		FullName: user.FullName(),
		UserType: string(user.UserType),
		Active:   user.Active,
	}
	if user.BirthDate != nil {
		dto.BirthDate = user.BirthDate.Format(dateLayout)
	}
	return dto
}

func (req *UserRequest) toDomain() (*domain.User, error) {
	user := &domain.User{
		Name:      req.Name,
		Email:     req.Email,
		Age:       req.Age,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserType:  domain.UserType(req.UserType),
		Active:    true,
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.BirthDate != "" {
		birth, err := time.Parse(dateLayout, req.BirthDate)
		if err != nil {
			return nil, err
		}
		user.BirthDate = &birth
	}
	return user, nil
}

// @Summary Create user
// @Description Validates the candidate and persists it; rejects with the full field error set
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} successResponse{data=UserDTO} "User created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 422 {object} validationErrorResponse "Validation failed"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create user", map[string]interface{}{
			"error":      err.Error(),
			"request_id": requestID(c),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := req.toDomain()
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid birth_date, expected YYYY-MM-DD")
		return
	}

	createdUser, err := h.userService.CreateUser(c.Request.Context(), user)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			newValidationErrorResponse(c, verr)
			return
		}
		h.logger.Error("Failed to create user", map[string]interface{}{
			"error":      err.Error(),
			"request_id": requestID(c),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Create failed")
		return
	}

	newSuccessResponse(c, http.StatusCreated, "User created successfully", toUserDTO(createdUser))
}

// @Summary List users
// @Description Lists users; ?status=active applies the active scope
// @Tags users
// @Produce json
// @Param status query string false "Filter: active"
// @Success 200 {object} successResponse "users"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	q := scope.SortedByName()
	if c.Query("status") == "active" {
		q = scope.Active().And(q)
	}

	users, err := h.userService.ListUsers(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("Failed to list users", map[string]interface{}{
			"error":      err.Error(),
			"request_id": requestID(c),
		})
		newErrorResponse(c, http.StatusInternalServerError, "List failed")
		return
	}

	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, toUserDTO(&users[i]))
	}

	newSuccessResponse(c, http.StatusOK, "users", gin.H{"users": dtos})
}

// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} successResponse{data=UserDTO} "User found"
// @Failure 404 {object} errorResponse "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("Failed to get user", map[string]interface{}{
			"error":      err.Error(),
			"user_id":    id,
			"request_id": requestID(c),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Get failed")
		return
	}

	newSuccessResponse(c, http.StatusOK, "User found", toUserDTO(user))
}

// @Summary Update user
// @Description Partial update; the age rule is not re-checked on this path
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUser true "Fields to update"
// @Success 200 {object} successResponse{data=UserDTO} "User updated"
// @Failure 404 {object} errorResponse "User not found"
// @Failure 422 {object} validationErrorResponse "Validation failed"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req UpdateUser
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in update user", map[string]interface{}{
			"error":      err.Error(),
			"request_id": requestID(c),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "User not found")
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, "Update failed")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.BirthDate != nil {
		birth, err := time.Parse(dateLayout, *req.BirthDate)
		if err != nil {
			newErrorResponse(c, http.StatusBadRequest, "Invalid birth_date, expected YYYY-MM-DD")
			return
		}
		user.BirthDate = &birth
	}
	if req.UserType != nil {
		user.UserType = domain.UserType(*req.UserType)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	updatedUser, err := h.userService.UpdateUser(c.Request.Context(), user)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			newValidationErrorResponse(c, verr)
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("Failed to update user", map[string]interface{}{
			"error":      err.Error(),
			"user_id":    id,
			"request_id": requestID(c),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Update failed")
		return
	}

	newSuccessResponse(c, http.StatusOK, "User updated successfully", toUserDTO(updatedUser))
}

// @Summary Delete user
// @Description Removes the user and every post it owns as one atomic unit
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} successResponse "User deleted"
// @Failure 404 {object} errorResponse "User not found"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	deletedPosts, err := h.userService.DeleteUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("Failed to delete user", map[string]interface{}{
			"error":      err.Error(),
			"user_id":    id,
			"request_id": requestID(c),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Delete failed")
		return
	}

	newSuccessResponse(c, http.StatusOK, "User deleted successfully", gin.H{
		"deleted_posts": deletedPosts,
	})
}

// @Summary Annual report
// @Description User counts for the current year, computed at request time
// @Tags users
// @Produce json
// @Success 200 {object} successResponse "Report"
// @Router /users/annual_report [get]
func (h *UserHandler) AnnualReport(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	ctx := c.Request.Context()

	total, err := h.userService.CountUsers(ctx, scope.Query{})
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Report failed")
		return
	}
	active, err := h.userService.CountUsers(ctx, scope.Active())
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Report failed")
		return
	}

	now := time.Now()
	newSuccessResponse(c, http.StatusOK, "Annual report", gin.H{
		"year":         strconv.Itoa(now.Year()),
		"generated_at": now.Format(time.RFC3339),
		"total_users":  total,
		"active_users": active,
	})
}
