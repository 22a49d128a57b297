package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"payroll-receipts-backend/domain"
	"payroll-receipts-backend/entities"
	"payroll-receipts-backend/internal/utils"
	"payroll-receipts-backend/internal/utils/mailing"
	"payroll-receipts-backend/pkg/jwt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserProfile, error)
		UpdateUser(ctx context.Context, userID string, req domain.UpdateUserRequest) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
		SendVerificationEmail(ctx context.Context, req domain.SendVerifyEmailRequest) error
		VerifyEmail(ctx context.Context, token string) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	if _, err := s.userRepository.GetByEmail(ctx, req.Email); err == nil {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RegisterResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		ID:           uuid.New(),
		Name:         req.Name,
		LastName:     req.LastName,
		CUIL:         req.CUIL,
		EmployerName: req.EmployerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     string(hashed),
		IsAdmin:      req.IsAdmin,
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.RegisterResponse{}, domain.ErrEmailAlreadyRegistered
		}
		return domain.RegisterResponse{}, err
	}

	return domain.RegisterResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	role := domain.RoleEmployee
	if user.IsAdmin {
		role = domain.RoleAdmin
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), role, user.Email)

	return domain.LoginResponse{
		Token: token,
		Role:  role,
		User:  toUserProfile(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserProfile, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserProfile{}, domain.ErrUserNotFound
		}
		return domain.UserProfile{}, err
	}
	return toUserProfile(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req domain.UpdateUserRequest) error {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.EmployerName != "" {
		user.EmployerName = req.EmployerName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	return s.userRepository.Update(ctx, user)
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenOneTime(map[string]any{
		"user_id": user.ID.String(),
		"purpose": "reset_password",
	}, time.Minute*30)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/auth/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>Para restablecer tu contraseña hacé click en el siguiente enlace:</p><p><a href=%q>Restablecer contraseña</a></p><p>El enlace vence en 30 minutos.</p>",
		user.Name, link,
	)

	return mailing.SendMail(user.Email, "Restablecer contraseña", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenOneTime(req.Token)
	if err != nil {
		return err
	}

	if purpose, _ := claims["purpose"].(string); purpose != "reset_password" {
		return domain.ErrTokenInvalid
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return domain.ErrTokenInvalid
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepository.UpdatePassword(ctx, userID, string(hashed))
}

func (s *userService) SendVerificationEmail(ctx context.Context, req domain.SendVerifyEmailRequest) error {
	user, err := s.userRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenOneTime(map[string]any{
		"user_id": user.ID.String(),
		"purpose": "verify_email",
	}, time.Hour*24)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/v1/users/verify?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>Confirmá tu dirección de correo con el siguiente enlace:</p><p><a href=%q>Verificar email</a></p>",
		user.Name, link,
	)

	return mailing.SendMail(user.Email, "Verificá tu email", body)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateTokenOneTime(token)
	if err != nil {
		return err
	}

	if purpose, _ := claims["purpose"].(string); purpose != "verify_email" {
		return domain.ErrTokenInvalid
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return domain.ErrTokenInvalid
	}

	return s.userRepository.MarkVerified(ctx, userID)
}

func toUserProfile(user *entities.User) domain.UserProfile {
	return domain.UserProfile{
		ID:           user.ID.String(),
		Name:         user.Name,
		LastName:     user.LastName,
		CUIL:         user.CUIL,
		EmployerName: user.EmployerName,
		Email:        user.Email,
		Phone:        user.Phone,
		IsAdmin:      user.IsAdmin,
	}
}
