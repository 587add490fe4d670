package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"journal-be/internal/dto"
	"journal-be/internal/entity"
	"journal-be/internal/pkg/mailer"
	"journal-be/internal/repository/specification"
	"journal-be/internal/repository/unitofwork"
	"journal-be/pkg/events"
	"journal-be/pkg/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 24 * time.Hour

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sessionID, refreshToken string) error
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

type authService struct {
	uowFactory       unitofwork.RepositoryFactory
	sessions         store.SessionStore
	emailService     mailer.IEmailService
	publisherService IPublisherService
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	sessions store.SessionStore,
	emailService mailer.IEmailService,
	publisherService IPublisherService,
) IAuthService {
	return &authService{
		uowFactory:       uowFactory,
		sessions:         sessions,
		emailService:     emailService,
		publisherService: publisherService,
	}
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return []byte(secret)
}

// issueSession signs an access token whose jti points at a server-side
// session record, so logout can invalidate it before expiry.
func (s *authService) issueSession(ctx context.Context, user *entity.User, ipAddress, userAgent string) (string, error) {
	sessionID := uuid.New().String()
	expiresAt := time.Now().Add(accessTokenTTL)

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"jti":     sessionID,
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", err
	}

	session := &store.Session{
		ID:        sessionID,
		UserID:    user.Id.String(),
		IpAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %v", err)
	}

	return signedToken, nil
}

func (s *authService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisherService == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	// Sign-up yields a usable session right away, same as sign-in.
	accessToken, err := s.issueSession(ctx, user, "", "")
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		AccessToken: accessToken,
		User: dto.UserDTO{
			Id:        user.Id,
			Email:     user.Email,
			FullName:  user.FullName,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if user == nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	accessToken, err := s.issueSession(ctx, user, ipAddress, userAgent)
	if err != nil {
		return nil, err
	}

	var rawRefreshToken string

	if req.RememberMe {
		rawRefreshToken = uuid.New().String()

		hasher := sha256.New()
		hasher.Write([]byte(rawRefreshToken))
		tokenHash := hex.EncodeToString(hasher.Sum(nil))

		refreshTokenEntity := &entity.UserRefreshToken{
			Id:        uuid.New(),
			UserId:    user.Id,
			TokenHash: tokenHash,
			ExpiresAt: time.Now().Add(time.Hour * 24 * 30),
			Revoked:   false,
			CreatedAt: time.Now(),
			IpAddress: ipAddress,
			UserAgent: userAgent,
		}

		if err := uow.UserRepository().CreateRefreshToken(ctx, refreshTokenEntity); err != nil {
			return nil, fmt.Errorf("failed to create refresh token: %v", err)
		}
	}

	s.publishEvent(ctx, events.TypeUserLogin, map[string]interface{}{
		"user_id": user.Id,
		"device":  userAgent,
	})

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: rawRefreshToken,
		User: dto.UserDTO{
			Id:        user.Id,
			Email:     user.Email,
			FullName:  user.FullName,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID, refreshToken string) error {
	if sessionID != "" {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return err
		}
	}

	if refreshToken == "" {
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	hasher := sha256.New()
	hasher.Write([]byte(refreshToken))
	tokenHash := hex.EncodeToString(hasher.Sum(nil))

	return uow.UserRepository().RevokeRefreshToken(ctx, tokenHash)
}

func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		// Don't leak whether the address exists.
		return nil
	}

	token := uuid.New().String()
	resetToken := &entity.PasswordResetToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
		CreatedAt: time.Now(),
		Used:      false,
	}

	if err := uow.UserRepository().CreatePasswordResetToken(ctx, resetToken); err != nil {
		return err
	}

	go func() {
		if emailErr := s.emailService.SendResetToken(user.Email, token); emailErr != nil {
			fmt.Printf("Error sending reset password email: %v\n", emailErr)
		}
	}()

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tokenEntity, err := uow.UserRepository().FindPasswordResetToken(ctx, specification.ByToken{Token: req.Token})
	if err != nil || tokenEntity == nil {
		return errors.New("invalid or expired token")
	}

	if tokenEntity.Used {
		return errors.New("this password reset link has already been used")
	}

	if time.Now().After(tokenEntity.ExpiresAt) {
		return errors.New("this password reset link has expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().UpdatePassword(ctx, tokenEntity.UserId, string(hash)); err != nil {
		return err
	}

	if err := uow.UserRepository().MarkTokenUsed(ctx, tokenEntity.Id); err != nil {
		return err
	}

	return uow.Commit()
}
