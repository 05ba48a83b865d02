package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/plantracker/plantracker/internal/models"
	"github.com/plantracker/plantracker/internal/services"
	"golang.org/x/crypto/bcrypt"
)

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	// OAuth2-style form logins send the email as "username"
	Username string `json:"username" form:"username"`
}

func (input *credentialsInput) email() string {
	if input.Email != "" {
		return input.Email
	}
	return input.Username
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid input")
	}

	if message := validateRegistration(input.email(), input.Password); message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}
	email := normalizeEmail(input.email())

	exists, err := handler.authService.RegistrationEmailExists(email)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to create account")
	}
	if exists {
		return apiError(c, fiber.StatusBadRequest, "Email already registered")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to secure password")
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := handler.authService.CreateUser(&user); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Email already registered")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid input")
	}

	user, err := handler.authService.Authenticate(input.email(), input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return apiError(c, fiber.StatusUnauthorized, "Incorrect email or password")
		}
		return apiError(c, fiber.StatusInternalServerError, "Failed to sign in")
	}

	token, err := handler.buildAccessToken(user.ID, time.Now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to create session")
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}
