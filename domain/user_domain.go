package domain

import (
	"errors"
)

var (
	MessageSuccessRegister        = "user registered successfully"
	MessageSuccessLogin           = "login success"
	MessageSuccessGetProfile      = "profile retrieved successfully"
	MessageSuccessUpdateUser      = "user updated successfully"
	MessageSuccessForgotPassword  = "password reset email sent"
	MessageSuccessResetPassword   = "password reset successfully"
	MessageSuccessSendVerifyEmail = "verification email sent"
	MessageSuccessVerifyEmail     = "email verified successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetProfile     = "failed to retrieve profile"
	MessageFailedUpdateUser     = "failed to update user"
	MessageFailedForgotPassword = "failed to send password reset email"
	MessageFailedResetPassword  = "failed to reset password"
	MessageFailedVerifyEmail    = "failed to verify email"

	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUserNotFound           = errors.New("user not found")
	ErrCredentialsInvalid     = errors.New("invalid email or password")
	ErrEmailNotVerified       = errors.New("email not verified")
)

type (
	RegisterRequest struct {
		Name         string `json:"name" validate:"required"`
		LastName     string `json:"last_name" validate:"required"`
		CUIL         string `json:"cuil" validate:"required,cuil"`
		EmployerName string `json:"employer_name" validate:"omitempty"`
		Email        string `json:"email" validate:"required,email"`
		Phone        string `json:"phone" validate:"omitempty"`
		Password     string `json:"password" validate:"required,min=8"`
		IsAdmin      bool   `json:"is_admin"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string      `json:"token"`
		Role  string      `json:"role"`
		User  UserProfile `json:"user"`
	}

	UserProfile struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		LastName     string `json:"last_name"`
		CUIL         string `json:"cuil"`
		EmployerName string `json:"employer_name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		IsAdmin      bool   `json:"is_admin"`
	}

	UpdateUserRequest struct {
		Name         string `json:"name" validate:"omitempty"`
		LastName     string `json:"last_name" validate:"omitempty"`
		EmployerName string `json:"employer_name" validate:"omitempty"`
		Phone        string `json:"phone" validate:"omitempty"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	SendVerifyEmailRequest struct {
		Email string `json:"email" validate:"required,email"`
	}
)
