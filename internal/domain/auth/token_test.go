package auth

import (
	"context"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1", TenantID: "t1", EmployeeID: "e1", RoleName: RoleHR}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.TenantID != "t1" || claims.EmployeeID != "e1" || claims.RoleName != RoleHR {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "u1"}, -time.Minute)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestStaticPermissions(t *testing.T) {
	perms := StaticPermissions{}
	ok, _ := perms.HasPermission(context.Background(), RoleHR, PermCompensationReadAll)
	if !ok {
		t.Fatal("expected hr to read all bonuses")
	}
	ok, _ = perms.HasPermission(context.Background(), RoleEmployee, PermCompensationReadAll)
	if ok {
		t.Fatal("did not expect employee to read all bonuses")
	}
	ok, _ = perms.HasPermission(context.Background(), "unknown", PermPerformanceRead)
	if ok {
		t.Fatal("did not expect unknown role to have permissions")
	}
}
