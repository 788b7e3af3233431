package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tunitour/internal/models/db_models"
	"tunitour/internal/models/request_models"
	"tunitour/internal/models/response_models"
	"tunitour/internal/repositories"
	mem "tunitour/pkg/memcache"
	"tunitour/pkg/utils"
)

const resetTokenTTL = 15 * time.Minute

type AccountServiceInterface interface {
	SignUp(ctx context.Context, request request_models.SignUpRequest) (response_models.AccountProfile, error)
	SignIn(ctx context.Context, request request_models.SignInRequest) (response_models.AuthToken, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
	Me(ctx context.Context, userID string) (response_models.AccountProfile, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	mailService IMailService
	tokens      mem.TokenStore
	jwt         *utils.JWTManager
	logger      *zap.Logger
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	mailService IMailService,
	tokens mem.TokenStore,
	jwt *utils.JWTManager,
	logger *zap.Logger,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		mailService: mailService,
		tokens:      tokens,
		jwt:         jwt,
		logger:      logger,
	}
}

func (a *AccountService) SignUp(ctx context.Context, request request_models.SignUpRequest) (response_models.AccountProfile, error) {
	email := strings.ToLower(strings.TrimSpace(request.Email))

	var errs utils.ValidationErrors
	if !utils.ValidateEmail(email) {
		errs.Add("email", "Please enter a valid email address")
	}
	if !utils.ValidatePassword(request.Password) {
		errs.Add("password", "Password must be at least 8 characters and contain upper case, lower case and a digit")
	}
	if err := errs.OrNil(); err != nil {
		return response_models.AccountProfile{}, err
	}

	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		a.logger.Error("account lookup failed", zap.Error(err))
		return response_models.AccountProfile{}, utils.ErrDatabaseError
	}
	if existing != nil {
		return response_models.AccountProfile{}, utils.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		a.logger.Error("hashing password failed", zap.Error(err))
		return response_models.AccountProfile{}, utils.ErrDatabaseError
	}

	role := db_models.RoleTourist
	if request.Role == db_models.RoleGuide {
		role = db_models.RoleGuide
	}
	account := &db_models.Account{
		Name:         strings.TrimSpace(request.DisplayName),
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := a.accountRepo.Insert(ctx, account); err != nil {
		a.logger.Error("creating account failed", zap.Error(err))
		return response_models.AccountProfile{}, utils.ErrDatabaseError
	}
	return accountProfile(*account), nil
}

// SignIn compares the submitted credentials as given; the email is only lower-cased for lookup.
func (a *AccountService) SignIn(ctx context.Context, request request_models.SignInRequest) (response_models.AuthToken, error) {
	var errs utils.ValidationErrors
	if strings.TrimSpace(request.Email) == "" {
		errs.Add("email", "Email is required")
	}
	if request.Password == "" {
		errs.Add("password", "Password is required")
	}
	if err := errs.OrNil(); err != nil {
		return response_models.AuthToken{}, err
	}

	account, err := a.accountRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(request.Email)))
	if err != nil {
		a.logger.Error("account lookup failed", zap.Error(err))
		return response_models.AuthToken{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.AuthToken{}, utils.ErrAccountNotFound
	}
	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return response_models.AuthToken{}, utils.ErrInvalidCredentials
	}

	token, err := a.jwt.CreateToken(account.ID, account.Role)
	if err != nil {
		a.logger.Error("signing token failed", zap.Error(err))
		return response_models.AuthToken{}, utils.ErrInvalidCredentials
	}
	return response_models.AuthToken{Token: token, Role: account.Role}, nil
}

// ForgotPassword answers the same way whether or not the email is registered.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		a.logger.Error("account lookup failed", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if account == nil {
		a.logger.Info("password reset requested for unknown email")
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		a.logger.Error("generating reset token failed", zap.Error(err))
		return utils.ErrDatabaseError
	}
	a.tokens.Set(token, account.Email, resetTokenTTL)

	if err := a.mailService.SendMailToResetPassword(account.Email, token); err != nil {
		a.logger.Warn("sending reset mail failed", zap.Error(err))
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	if !utils.ValidatePassword(request.NewPassword) {
		var errs utils.ValidationErrors
		errs.Add("new_password", "Password must be at least 8 characters and contain upper case, lower case and a digit")
		return errs
	}

	email := a.tokens.Consume(request.Token)
	if email == "" {
		return utils.ErrInvalidResetToken
	}

	hashed, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		a.logger.Error("hashing password failed", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if err := a.accountRepo.UpdatePassword(ctx, email, hashed); err != nil {
		a.logger.Error("updating password failed", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) Me(ctx context.Context, userID string) (response_models.AccountProfile, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return response_models.AccountProfile{}, utils.ErrAccountNotFound
	}
	account, err := a.accountRepo.FindByID(ctx, id)
	if err != nil {
		a.logger.Error("account lookup failed", zap.Error(err))
		return response_models.AccountProfile{}, utils.ErrDatabaseError
	}
	if account == nil {
		return response_models.AccountProfile{}, utils.ErrAccountNotFound
	}
	return accountProfile(*account), nil
}

func accountProfile(a db_models.Account) response_models.AccountProfile {
	return response_models.AccountProfile{
		ID:    a.ID.String(),
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}
