package models

import (
	"testing"
	"time"
)

func TestChangedPasswordAfter(t *testing.T) {
	now := time.Now()

	usr := &User{}
	if usr.ChangedPasswordAfter(now) {
		t.Error("user without a password change must accept any token")
	}

	changed := now
	usr.PasswordChangedAt = &changed

	issuedBefore := now.Add(-time.Hour)
	if !usr.ChangedPasswordAfter(issuedBefore) {
		t.Error("token issued before the password change must be rejected")
	}

	issuedAfter := now.Add(time.Hour)
	if usr.ChangedPasswordAfter(issuedAfter) {
		t.Error("token issued after the password change must be accepted")
	}
}
