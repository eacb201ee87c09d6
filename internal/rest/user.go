package rest

import (
	"context"
	"net/http"
	"time"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, user *domain.User) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	Logout(ctx context.Context, userID, token string) error
	VerifyEmail(ctx context.Context, verificationCodeEncrypt string) error
	GetUserByID(ctx context.Context, id uint) (domain.User, error)
	GetUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type UserHandler struct {
	userService UserService
	validate    *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
		timeout:     10 * time.Second,
	}
}

type UserRegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserUpdateRequest struct {
	FullName string `json:"fullName,omitempty"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=marketer admin"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req UserRegisterRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("invalid request body", err)
		return apperror.Wrap(apperror.CodeValidation, "invalid request body", err)
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("failed to validate user register", err)
		return apperror.Wrap(apperror.CodeValidation, err.Error(), err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.Register(ctx, &domain.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		logger.Error("failed to register user", err)
		return err
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(user))
}

func (h *UserHandler) Login(c echo.Context) error {
	var req UserLoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("invalid request body", err)
		return apperror.Wrap(apperror.CodeValidation, "invalid request body", err)
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("failed to validate user login", err)
		return apperror.Wrap(apperror.CodeValidation, err.Error(), err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, user, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		logger.Error("failed to login", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"token": token,
		"user":  user,
	}))
}

func (h *UserHandler) Logout(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return apperror.New(apperror.CodeUnauthorized, "unauthorized")
	}

	token, ok := c.Get("token").(string)
	if !ok {
		return apperror.New(apperror.CodeUnauthorized, "unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.Logout(ctx, formatUint(uint64(userID)), token); err != nil {
		logger.Error("failed to logout user", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("logout successful"))
}

func (h *UserHandler) VerifyEmail(c echo.Context) error {
	encCode := c.Param("code")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.VerifyEmail(ctx, encCode); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("email verified"))
}

// ListUsers returns every staff account. Restricted to admins in the router.
func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	users, err := h.userService.GetUsers(ctx)
	if err != nil {
		logger.Error("failed to list users", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(users))
}

// DeleteUser removes a staff account. Restricted to admins in the router.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.userService.DeleteUser(ctx, uint(id)); err != nil {
		logger.Error("failed to delete user", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("user deleted"))
}

// Profile returns the authenticated user's own record.
func (h *UserHandler) Profile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return apperror.New(apperror.CodeUnauthorized, "unauthorized")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		logger.Error("failed to get user profile", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(user))
}

// UpdateProfile updates the authenticated user's own record. The role field
// is ignored here so a marketer cannot promote themselves.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return apperror.New(apperror.CodeUnauthorized, "unauthorized")
	}

	var req UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("invalid request body", err)
		return apperror.Wrap(apperror.CodeValidation, "invalid request body", err)
	}

	if err := h.validate.Struct(&req); err != nil {
		logger.Error("failed to validate user update", err)
		return apperror.Wrap(apperror.CodeValidation, err.Error(), err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.UpdateUser(ctx, userID, &domain.User{
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		logger.Error("failed to update user", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(user))
}
