package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/1983adrian/adimarketplace-sub002/internal/config"
	"github.com/1983adrian/adimarketplace-sub002/internal/models"
	"github.com/1983adrian/adimarketplace-sub002/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.SellerProfile{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.UserJWT = config.JWTConfig{SecretKey: "0123456789abcdef0123456789abcdef", ExpireHours: 24}
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true}

	return NewUserAuthService(cfg, repository.NewUserRepository(db)), db
}

func TestUserRegisterAndLogin(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, token, expiresAt, err := svc.Register(" Buyer@Example.ro ", "parola123", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "buyer@example.ro" {
		t.Fatalf("email should be normalized, got %s", user.Email)
	}
	if user.DisplayName != "buyer" {
		t.Fatalf("display name should fall back to mailbox, got %s", user.DisplayName)
	}
	if token == "" || expiresAt.Before(time.Now()) {
		t.Fatalf("register should issue a future token")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	if _, _, _, err := svc.Register("buyer@example.ro", "parola123", ""); !errors.Is(err, ErrEmailRegistered) {
		t.Fatalf("duplicate register want ErrEmailRegistered got %v", err)
	}

	if _, _, _, err := svc.Login("buyer@example.ro", "parola123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, _, _, err := svc.Login("buyer@example.ro", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("not-an-email", "parola123"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("malformed email want ErrInvalidEmail got %v", err)
	}
}

func TestUserRegisterWeakPassword(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("buyer@example.ro", "short ", ""); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("short password want ErrPasswordTooWeak got %v", err)
	}
	if _, _, _, err := svc.Register("buyer@example.ro", "longenoughbutnodigits", ""); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("digitless password want ErrPasswordTooWeak got %v", err)
	}
}

func TestUserLoginDisabledAccount(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("seller@example.ro", "parola123", "Mihai")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", "disabled").Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	if _, _, _, err := svc.Login("seller@example.ro", "parola123"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("disabled account want ErrAccountDisabled got %v", err)
	}
}

func TestUserChangePasswordInvalidatesTokens(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("buyer@example.ro", "parola123", "Ana")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	oldVersion := user.TokenVersion

	if err := svc.ChangePassword(user.ID, "wrong-pass", "parola456"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong old password want ErrInvalidCredentials got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "parola123", "parola456"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	var updated models.User
	if err := db.First(&updated, user.ID).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if updated.TokenVersion != oldVersion+1 {
		t.Fatalf("token version want %d got %d", oldVersion+1, updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("token invalid-before should be set")
	}

	if _, _, _, err := svc.Login("buyer@example.ro", "parola456"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestSaveSellerProfileValidation(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("seller@example.ro", "parola123", "Mihai")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.SaveSellerProfile(user.ID, &models.SellerProfile{Name: "Mihai"}); !errors.Is(err, ErrSellerProfileNotSet) {
		t.Fatalf("incomplete profile want ErrSellerProfileNotSet got %v", err)
	}

	profile := &models.SellerProfile{
		Name:         "Mihai Ionescu",
		AddressLine1: "Strada Victoriei 12",
		City:         "Bucharest",
		PostalCode:   "010063",
	}
	if err := svc.SaveSellerProfile(user.ID, profile); err != nil {
		t.Fatalf("save profile failed: %v", err)
	}

	var stored models.SellerProfile
	if err := db.Where("user_id = ?", user.ID).First(&stored).Error; err != nil {
		t.Fatalf("load profile failed: %v", err)
	}
	if stored.City != "Bucharest" {
		t.Fatalf("profile city want Bucharest got %s", stored.City)
	}
}
