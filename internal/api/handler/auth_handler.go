package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventhub/platform/internal/api/metrics"
	"github.com/eventhub/platform/internal/core/domain"
	"github.com/eventhub/platform/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account and returns a signed token.
//
// @Summary      Register a new user
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Router       /authentication/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Phone:    req.PhoneNumber,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("register").Inc()
	return c.JSON(http.StatusCreated, toAuthResponse(res))
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /authentication/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.WithLabelValues("login").Inc()
	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// Update changes the caller's own profile.
//
// @Summary      Update profile
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Security     AuthToken
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /authentication/update [put]
func (h *AuthHandler) Update(c echo.Context) error {
	p, err := actor(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.authService.UpdateProfile(c.Request().Context(), p.UserID, domain.ProfileUpdate{
		Name:    req.Name,
		Surname: req.Surname,
		Phone:   req.PhoneNumber,
		Email:   req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// GetUser serves the public snippet of a user to sibling services.
//
// @Summary      Get user snippet
// @Tags         authentication
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]any
// @Router       /authentication/user/{id} [get]
func (h *AuthHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return domain.InvalidParameter("invalid-user-id")
	}

	snippet, err := h.authService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userResponse{
		ID:      snippet.ID,
		Name:    snippet.Name,
		Surname: snippet.Surname,
		Email:   snippet.Email,
	})
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		UserID:  r.UserID,
		Email:   r.Email,
		Phone:   r.Phone,
		Name:    r.Name,
		Surname: r.Surname,
		Token:   r.Token,
	}
}
