package user

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// 16 bytes, AES-128
const testVerificationKey = "0123456789abcdef"

type fakeUserRepo struct {
	users  map[string]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.Email] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, apperror.New(apperror.CodeUserNotFound, "user not found")
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return domain.User{}, apperror.New(apperror.CodeUserNotFound, "user not found")
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	f.users[user.Email] = *user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	for email, u := range f.users {
		if u.ID == id {
			delete(f.users, email)
			return nil
		}
	}
	return apperror.New(apperror.CodeUserNotFound, "user not found")
}

func (f *fakeUserRepo) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	for email, u := range f.users {
		if u.ID == id {
			u.IsVerified = isVerified
			f.users[email] = u
			return nil
		}
	}
	return apperror.New(apperror.CodeUserNotFound, "user not found")
}

type fakeNotifRepo struct {
	sentTo   string
	lastBody string
	err      error
}

func (f *fakeNotifRepo) SendEmail(toName, toEmail, subject, message string) error {
	f.sentTo = toEmail
	f.lastBody = message
	return f.err
}

type fakeTokenRepo struct {
	stored  map[string]string
	revoked []string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{stored: map[string]string{}}
}

func (f *fakeTokenRepo) StoreToken(ctx context.Context, userID, token, role string, ttl time.Duration) error {
	f.stored[userID] = token
	return nil
}

func (f *fakeTokenRepo) ValidateToken(ctx context.Context, token string) (string, error) {
	for userID, t := range f.stored {
		if t == token {
			return userID, nil
		}
	}
	return "", apperror.New(apperror.CodeUnauthorized, "session not found")
}

func (f *fakeTokenRepo) RevokeToken(ctx context.Context, userID, token string) error {
	f.revoked = append(f.revoked, userID)
	delete(f.stored, userID)
	return nil
}

func newTestService(userRepo *fakeUserRepo, notif *fakeNotifRepo, tokens *fakeTokenRepo) *userService {
	return NewUserService(userRepo, validator.New(), notif, tokens, testVerificationKey, "https://example.com")
}

func seedVerifiedUser(t *testing.T, repo *fakeUserRepo, email, password string) domain.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	u := domain.User{FullName: "김마케터", Email: email, Password: string(hash), IsVerified: true, Role: RoleMarketer}
	if err := repo.Create(context.Background(), &u); err != nil {
		t.Fatal(err)
	}
	return u
}

func TestRegister(t *testing.T) {
	userRepo := newFakeUserRepo()
	notif := &fakeNotifRepo{}
	svc := newTestService(userRepo, notif, newFakeTokenRepo())

	got, err := svc.Register(context.Background(), &domain.User{
		FullName: "김마케터",
		Email:    "marketer@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Role != RoleMarketer {
		t.Errorf("new user role = %q, want marketer", got.Role)
	}
	if got.IsVerified {
		t.Error("new user must start unverified")
	}
	if got.Password != "" {
		t.Error("password must not be echoed back")
	}

	stored := userRepo.users["marketer@example.com"]
	if stored.Password == "secret123" {
		t.Error("password must be stored hashed")
	}

	if notif.sentTo != "marketer@example.com" {
		t.Errorf("verification email sent to %q", notif.sentTo)
	}
	if !strings.Contains(notif.lastBody, "/api/v1/users/email-verification/") {
		t.Error("verification email should carry the activation link")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedVerifiedUser(t, userRepo, "taken@example.com", "secret123")
	svc := newTestService(userRepo, &fakeNotifRepo{}, newFakeTokenRepo())

	_, err := svc.Register(context.Background(), &domain.User{
		FullName: "누군가",
		Email:    "taken@example.com",
		Password: "secret123",
	})
	if !apperror.Is(err, apperror.CodeDuplicateEmail) {
		t.Fatalf("expected EMAIL_ALREADY_EXISTS, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &fakeNotifRepo{}, newFakeTokenRepo())

	_, err := svc.Register(context.Background(), &domain.User{Email: "not-an-email", Password: "secret123"})
	if !apperror.Is(err, apperror.CodeValidation) {
		t.Errorf("bad email: expected VALIDATION_ERROR, got %v", err)
	}

	_, err = svc.Register(context.Background(), &domain.User{Email: "ok@example.com", Password: "short"})
	if !apperror.Is(err, apperror.CodeValidation) {
		t.Errorf("short password: expected VALIDATION_ERROR, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	utils.InitJWT("test-secret")

	userRepo := newFakeUserRepo()
	seedVerifiedUser(t, userRepo, "marketer@example.com", "secret123")
	tokens := newFakeTokenRepo()
	svc := newTestService(userRepo, &fakeNotifRepo{}, tokens)

	token, user, err := svc.Login(context.Background(), "marketer@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if token == "" {
		t.Fatal("expected a session token")
	}
	if user.Password != "" {
		t.Error("password must not be echoed back")
	}
	if tokens.stored["1"] != token {
		t.Error("session token was not stored")
	}

	claims, err := utils.ParseJWT(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != "1" || claims.Role != RoleMarketer {
		t.Errorf("claims = %q/%q, want 1/marketer", claims.UserID, claims.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitJWT("test-secret")

	userRepo := newFakeUserRepo()
	seedVerifiedUser(t, userRepo, "marketer@example.com", "secret123")
	svc := newTestService(userRepo, &fakeNotifRepo{}, newFakeTokenRepo())

	_, _, err := svc.Login(context.Background(), "marketer@example.com", "wrong-password")
	if !apperror.Is(err, apperror.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestLoginUnverifiedEmail(t *testing.T) {
	utils.InitJWT("test-secret")

	userRepo := newFakeUserRepo()
	u := seedVerifiedUser(t, userRepo, "marketer@example.com", "secret123")
	u.IsVerified = false
	userRepo.users[u.Email] = u
	svc := newTestService(userRepo, &fakeNotifRepo{}, newFakeTokenRepo())

	_, _, err := svc.Login(context.Background(), "marketer@example.com", "secret123")
	if !apperror.Is(err, apperror.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	tokens := newFakeTokenRepo()
	tokens.stored["1"] = "some-token"
	svc := newTestService(newFakeUserRepo(), &fakeNotifRepo{}, tokens)

	if err := svc.Logout(context.Background(), "1", "some-token"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens.revoked) != 1 || tokens.revoked[0] != "1" {
		t.Errorf("revoked = %v, want [1]", tokens.revoked)
	}
}

func encodeVerificationCode(t *testing.T, email string, expAt int64) string {
	t.Helper()
	encrypted, err := goshortcute.AESCBCEncrypt([]byte(fmt.Sprintf("%v|%v", email, expAt)), []byte(testVerificationKey))
	if err != nil {
		t.Fatal(err)
	}
	return goshortcute.StringtoBase64Encode(encrypted)
}

func TestVerifyEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	u := seedVerifiedUser(t, userRepo, "marketer@example.com", "secret123")
	u.IsVerified = false
	userRepo.users[u.Email] = u
	svc := newTestService(userRepo, &fakeNotifRepo{}, newFakeTokenRepo())

	code := encodeVerificationCode(t, "marketer@example.com", time.Now().Add(5*time.Minute).Unix())
	if err := svc.VerifyEmail(context.Background(), code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !userRepo.users["marketer@example.com"].IsVerified {
		t.Error("user should be verified")
	}
}

func TestVerifyEmailExpiredCode(t *testing.T) {
	userRepo := newFakeUserRepo()
	u := seedVerifiedUser(t, userRepo, "marketer@example.com", "secret123")
	u.IsVerified = false
	userRepo.users[u.Email] = u
	svc := newTestService(userRepo, &fakeNotifRepo{}, newFakeTokenRepo())

	code := encodeVerificationCode(t, "marketer@example.com", time.Now().Add(-time.Minute).Unix())
	if err := svc.VerifyEmail(context.Background(), code); !apperror.Is(err, apperror.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestVerifyEmailAlreadyVerified(t *testing.T) {
	userRepo := newFakeUserRepo()
	seedVerifiedUser(t, userRepo, "marketer@example.com", "secret123")
	svc := newTestService(userRepo, &fakeNotifRepo{}, newFakeTokenRepo())

	code := encodeVerificationCode(t, "marketer@example.com", time.Now().Add(5*time.Minute).Unix())
	if err := svc.VerifyEmail(context.Background(), code); !apperror.Is(err, apperror.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	userRepo := newFakeUserRepo()
	u := seedVerifiedUser(t, userRepo, "marketer@example.com", "secret123")
	svc := newTestService(userRepo, &fakeNotifRepo{}, newFakeTokenRepo())

	_, err := svc.UpdateUser(context.Background(), u.ID, &domain.User{Role: "superuser"})
	if !apperror.Is(err, apperror.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestUpdateUserKeepsUnsetFields(t *testing.T) {
	userRepo := newFakeUserRepo()
	u := seedVerifiedUser(t, userRepo, "marketer@example.com", "secret123")
	svc := newTestService(userRepo, &fakeNotifRepo{}, newFakeTokenRepo())

	got, err := svc.UpdateUser(context.Background(), u.ID, &domain.User{FullName: "김팀장"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.FullName != "김팀장" {
		t.Errorf("full name = %q, want 김팀장", got.FullName)
	}
	if got.Role != RoleMarketer {
		t.Errorf("role changed to %q, should stay marketer", got.Role)
	}
	if userRepo.users["marketer@example.com"].Password == "" {
		t.Error("stored password hash must survive a profile update")
	}
}
