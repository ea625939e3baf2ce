package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceUserWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("curator", "/admin/posts/:id", "PATCH"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if _, _, err := svc.AssignRole(1, "curator"); err != nil {
		t.Fatalf("assign role failed: %v", err)
	}

	allow, err := svc.EnforceUser(1, "/api/v1/admin/posts/42", "patch")
	if err != nil || !allow {
		t.Fatalf("expected allow, got allow=%v err=%v", allow, err)
	}
	allow, err = svc.EnforceUser(1, "/api/v1/admin/posts/42", "DELETE")
	if err != nil || allow {
		t.Fatalf("expected deny, got allow=%v err=%v", allow, err)
	}
	allow, err = svc.EnforceUser(2, "/api/v1/admin/posts/42", "PATCH")
	if err != nil || allow {
		t.Fatalf("user without role should be denied, got allow=%v err=%v", allow, err)
	}
}

func TestAssignAndRevokeRole(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	role, added, err := svc.AssignRole(5, "moderator")
	if err != nil || !added || role != "role:moderator" {
		t.Fatalf("assign role failed: role=%s added=%v err=%v", role, added, err)
	}
	if _, added, _ := svc.AssignRole(5, "role:moderator"); added {
		t.Fatalf("second assign should be a no-op")
	}
	roles, err := svc.GetUserRoles(5)
	if err != nil || len(roles) != 1 || roles[0] != "role:moderator" {
		t.Fatalf("roles want [role:moderator], got=%v err=%v", roles, err)
	}

	if _, removed, err := svc.RevokeRole(5, "moderator"); err != nil || !removed {
		t.Fatalf("revoke failed: removed=%v err=%v", removed, err)
	}
	roles, _ = svc.GetUserRoles(5)
	if len(roles) != 0 {
		t.Fatalf("roles should be empty, got=%v", roles)
	}
}

func TestNormalizeObjectAndRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/posts/:id", want: "/admin/posts/:id"},
		{in: "/admin/posts/:id", want: "/admin/posts/:id"},
		{in: "admin/posts", want: "/admin/posts"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		if got := NormalizeObject(item.in); got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
	if _, err := NormalizeRole("  "); err == nil {
		t.Fatalf("empty role should be rejected")
	}
	if _, err := NormalizeRole("__anchor__"); err == nil {
		t.Fatalf("anchor role should be rejected")
	}
	if got, _ := NormalizeRole("read only"); got != "role:read_only" {
		t.Fatalf("unexpected role: %s", got)
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap should be idempotent: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if strings.Join(roles, ",") != "role:editor,role:moderator,role:readonly_auditor" {
		t.Fatalf("unexpected builtin roles: %v", roles)
	}

	if _, _, err := svc.AssignRole(3, "moderator"); err != nil {
		t.Fatalf("assign role failed: %v", err)
	}
	cases := []struct {
		obj, act string
		want     bool
	}{
		{obj: "/admin/posts", act: "GET", want: true},
		{obj: "/admin/comments/9", act: "DELETE", want: true},
		{obj: "/admin/posts/9", act: "DELETE", want: false},
		{obj: "/admin/categories", act: "POST", want: false},
	}
	for _, c := range cases {
		allow, err := svc.EnforceUser(3, c.obj, c.act)
		if err != nil || allow != c.want {
			t.Fatalf("%s %s: want %v got %v err=%v", c.act, c.obj, c.want, allow, err)
		}
	}

	policies, err := svc.GetRolePolicies("editor")
	if err != nil || len(policies) != 7 {
		t.Fatalf("editor policies want 7 got %d err=%v", len(policies), err)
	}
}

func TestRevokeRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("curator", "/admin/locations", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if _, _, err := svc.AssignRole(3, "curator"); err != nil {
		t.Fatalf("assign role failed: %v", err)
	}
	if err := svc.RevokeRolePolicy("curator", "/api/v1/admin/locations", "get"); err != nil {
		t.Fatalf("revoke role policy failed: %v", err)
	}
	allow, err := svc.EnforceUser(3, "/api/v1/admin/locations", "GET")
	if err != nil || allow {
		t.Fatalf("expected deny after revoke, got allow=%v err=%v", allow, err)
	}
}
