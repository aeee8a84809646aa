package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
)

func newTestManager(t *testing.T) *JWTManager {
	t.Helper()
	m, err := NewJWTManager("0123456789abcdef0123456789abcdef", "case-service", "case-clients", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	return m
}

func TestIssueAndValidateToken(t *testing.T) {
	m := newTestManager(t)
	centerID := uuid.New()
	user := models.User{
		ID:       uuid.New(),
		CenterID: &centerID,
		Email:    "staff@example.org",
		Role:     RoleStaff,
	}

	token, err := m.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("user id = %s, want %s", claims.UserID, user.ID)
	}
	if claims.CenterID == nil || *claims.CenterID != centerID {
		t.Errorf("center id = %v, want %s", claims.CenterID, centerID)
	}
	if claims.Role != RoleStaff {
		t.Errorf("role = %q, want %q", claims.Role, RoleStaff)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	m := newTestManager(t)
	token, err := m.IssueToken(models.User{ID: uuid.New(), Email: "a@b.c", Role: RoleViewer})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := m.ValidateToken(tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
	if _, err := m.ValidateToken(""); err == nil {
		t.Error("expected empty token to be rejected")
	}
	if _, err := m.ValidateToken("not.a-token"); err == nil {
		t.Error("expected malformed token to be rejected")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m := newTestManager(t)
	issued := time.Now().Add(-2 * time.Hour)
	m.nowFunc = func() time.Time { return issued }

	token, err := m.IssueToken(models.User{ID: uuid.New(), Email: "a@b.c", Role: RoleStaff})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	m.nowFunc = time.Now
	if _, err := m.ValidateToken(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}
