package auth

import "testing"

func TestAllowed(t *testing.T) {
	if !Allowed(RoleHR, Staff()...) {
		t.Fatal("hr should pass the staff check")
	}
	if !Allowed(RoleAdmin, Staff()...) {
		t.Fatal("admin should pass the staff check")
	}
	if Allowed(RoleEmployee, Staff()...) {
		t.Fatal("employee should not pass the staff check")
	}
	if Allowed(RoleHR, RoleAdmin) {
		t.Fatal("hr should not pass an admin-only check")
	}
	if Allowed("", RoleAdmin, RoleHR, RoleEmployee) {
		t.Fatal("empty role should never pass")
	}
}
