package user

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/logger"
	"aiMarketingMsg/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
	UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

// TokenRepository tracks live sessions so logout can revoke a JWT before it
// expires.
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token, role string, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	RevokeToken(ctx context.Context, userID, token string) error
}

const (
	RoleMarketer = "marketer"
	RoleAdmin    = "admin"

	sessionTTL          = 24 * time.Hour
	verificationCodeTTL = 5

	subjectRegisterAccount   = "계정을 활성화해주세요"
	emailBodyRegisterAccount = `%v님, 아래 링크를 열어 계정을 활성화해주세요.</br></br>%v</br>링크는 %v분 동안만 유효합니다.`
)

var validRoles = map[string]bool{
	RoleMarketer: true,
	RoleAdmin:    true,
}

type userService struct {
	userRepo                UserRepository
	validate                *validator.Validate
	notifRepo               NotificationRepository
	tokenRepo               TokenRepository
	appEmailVerificationKey string
	appDeploymentUrl        string
}

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	tokenRepo TokenRepository,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:                userRepo,
		validate:                validate,
		notifRepo:               notifRepo,
		tokenRepo:               tokenRepo,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        appDeploymentUrl,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("invalid email format", err)
		return domain.User{}, apperror.New(apperror.CodeValidation, "invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("invalid user password", err)
		return domain.User{}, apperror.New(apperror.CodeValidation, "password must be at least 6 characters")
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("email already exists")
		return domain.User{}, apperror.New(apperror.CodeDuplicateEmail, "email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("failed to hash password", err)
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := domain.User{
		FullName:   user.FullName,
		Email:      user.Email,
		Password:   string(passwordHash),
		IsVerified: false,
		Role:       RoleMarketer,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("failed to create new user", err)
		return domain.User{}, err
	}

	expAt := time.Now().Add(verificationCodeTTL * time.Minute).Unix()

	verificationCode := fmt.Sprintf("%v|%v", newUser.Email, expAt)
	verificationCodeEncrypt, err := goshortcute.AESCBCEncrypt([]byte(verificationCode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Fatal("error when encrypting verification code")
	}
	strEncode := goshortcute.StringtoBase64Encode(verificationCodeEncrypt)
	activationLink := s.appDeploymentUrl + "/api/v1/users/email-verification/" + strEncode

	err = s.notifRepo.SendEmail(newUser.FullName, newUser.Email, subjectRegisterAccount,
		fmt.Sprintf(emailBodyRegisterAccount, newUser.FullName, activationLink, verificationCodeTTL))
	if err != nil {
		logger.Warn("failed to send verification email", err)
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("invalid user credentials", err)
		return "", domain.User{}, apperror.New(apperror.CodeUnauthorized, "invalid credentials")
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Error("user password incorrect")
		return "", domain.User{}, apperror.New(apperror.CodeUnauthorized, "invalid credentials")
	}

	if !user.IsVerified {
		logger.Error("email address has not been verified")
		return "", domain.User{}, apperror.New(apperror.CodeForbidden, "email address has not been verified")
	}

	userIdStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIdStr, user.Role, sessionTTL)
	if err != nil {
		logger.Error("failed to generate token", err)
		return "", domain.User{}, fmt.Errorf("failed to generate token: %w", err)
	}

	err = s.tokenRepo.StoreToken(ctx, userIdStr, token, user.Role, sessionTTL)
	if err != nil {
		logger.Error("failed to store session token", err)
		return "", domain.User{}, err
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID, token string) error {
	if err := s.tokenRepo.RevokeToken(ctx, userID, token); err != nil {
		logger.Error("failed to revoke session token", err)
		return err
	}

	return nil
}

func (s *userService) VerifyEmail(ctx context.Context, verificationCodeEncrypt string) error {
	strDecode := goshortcute.StringtoBase64Decode(verificationCodeEncrypt)
	verificationCodeDecrypt, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Error("verifying email error", err)
		return apperror.New(apperror.CodeValidation, "invalid or expired url")
	}

	verificationCode := strings.Split(verificationCodeDecrypt, "|")
	if len(verificationCode) != 2 {
		logger.Error("verifying email error", "code", verificationCodeDecrypt)
		return apperror.New(apperror.CodeValidation, "invalid or expired url")
	}

	email := verificationCode[0]
	expAtStr := verificationCode[1]

	ts, err := strconv.ParseInt(expAtStr, 10, 64)
	if err != nil {
		logger.Error("verifying email error", "code", verificationCodeDecrypt)
		return apperror.New(apperror.CodeValidation, "invalid or expired url")
	}
	if time.Now().After(time.Unix(ts, 0)) {
		return apperror.New(apperror.CodeValidation, "invalid or expired url")
	}

	getUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("verifying email error", err)
		return err
	}

	if getUser.IsVerified {
		logger.Warn("email verified already", "email", email)
		return apperror.New(apperror.CodeValidation, "invalid or expired url")
	}

	if err := s.userRepo.UpdateEmailVerification(ctx, getUser.ID, true); err != nil {
		logger.Error("verify email err", err)
		return err
	}

	return nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to get user by id", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// GetUsers lists all marketing staff accounts. Admin only at the route level.
func (s *userService) GetUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to list users", err)
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// DeleteUser removes an account and revokes nothing, live sessions expire on
// their own TTL.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete user", err)
		return err
	}

	logger.Info("user deleted", "userId", id)
	return nil
}

// UpdateUser updates the caller's own profile. Empty fields are left as-is.
func (s *userService) UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	existingUser, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("user not found for update", err)
		return domain.User{}, err
	}

	if updateData.FullName != "" {
		existingUser.FullName = updateData.FullName
	}

	if updateData.Password != "" {
		if err := s.validate.Var(updateData.Password, "required,min=6"); err != nil {
			logger.Error("invalid password", err)
			return domain.User{}, apperror.New(apperror.CodeValidation, "password must be at least 6 characters")
		}

		passwordHash, err := utils.HashPassword(updateData.Password)
		if err != nil {
			logger.Error("failed to hash password", err)
			return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		existingUser.Password = string(passwordHash)
	}

	if updateData.Role != "" {
		if !validRoles[updateData.Role] {
			return domain.User{}, apperror.New(apperror.CodeValidation, "invalid role")
		}
		existingUser.Role = updateData.Role
	}

	if err := s.userRepo.Update(ctx, &existingUser); err != nil {
		logger.Error("failed to update user", err)
		return domain.User{}, err
	}

	existingUser.Password = ""
	return existingUser, nil
}
