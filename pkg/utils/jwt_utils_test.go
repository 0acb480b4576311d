package utils_test

import (
	"testing"

	"storecrm_backend/pkg/utils"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := utils.GenerateAccessToken(42, "budi", "Operator")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "budi" {
		t.Errorf("Username = %q, want %q", claims.Username, "budi")
	}
	if claims.Role != "Operator" {
		t.Errorf("Role = %q, want %q", claims.Role, "Operator")
	}
	if claims.Issuer != utils.AccessTokenIssuer {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, utils.AccessTokenIssuer)
	}
}

func TestRefreshTokenCarriesRefreshIssuer(t *testing.T) {
	token, err := utils.GenerateRefreshToken(42)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Issuer != utils.RefreshTokenIssuer {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, utils.RefreshTokenIssuer)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := utils.GenerateAccessToken(42, "budi", "Operator")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := utils.ValidateToken(tampered); err == nil {
		t.Error("ValidateToken accepted a tampered token")
	}
}
