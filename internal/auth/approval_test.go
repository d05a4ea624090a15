package auth

import (
	"context"
	"testing"
	"time"

	"github.com/noah-isme/backend-gstbill/internal/common"
)

func newTestService(t *testing.T, queries *fakeQueries) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Queries:         queries,
		Secret:          "test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		ResetTokenTTL:   time.Hour,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestRegisterApproveLoginFlow(t *testing.T) {
	queries := newFakeQueries()
	svc := newTestService(t, queries)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Name:          "Anita Desai",
		Email:         "Anita@Example.com",
		Password:      "s3cretpass",
		BusinessName:  "Desai Hardware",
		GSTNumber:     "27aapfu0939f1zv",
		BusinessState: "Maharashtra",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "anita@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.GSTNumber != "27AAPFU0939F1ZV" {
		t.Fatalf("expected normalized GSTIN, got %q", user.GSTNumber)
	}
	if user.IsApproved {
		t.Fatal("expected new account to start unapproved")
	}

	// Login must be rejected until the account is approved.
	if _, err := svc.Login(ctx, "anita@example.com", "s3cretpass", "", ""); err == nil {
		t.Fatal("expected login rejection for pending account")
	} else if appErr, ok := err.(*common.AppError); !ok || appErr.Code != "ACCOUNT_PENDING" {
		t.Fatalf("expected ACCOUNT_PENDING, got %v", err)
	}

	pending, err := svc.PendingUsers(ctx)
	if err != nil {
		t.Fatalf("pending users: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending user, got %d", len(pending))
	}

	approved, err := svc.Approve(ctx, user.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !approved.IsApproved {
		t.Fatal("expected account approved")
	}

	result, err := svc.Login(ctx, "anita@example.com", "s3cretpass", "", "")
	if err != nil {
		t.Fatalf("login after approval: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("expected token pair after approval")
	}
}

func TestRegisterRejectsMalformedGSTIN(t *testing.T) {
	queries := newFakeQueries()
	svc := newTestService(t, queries)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:      "Bad GSTIN",
		Email:     "bad@example.com",
		Password:  "s3cretpass",
		GSTNumber: "NOT-A-GSTIN",
	})
	if err == nil {
		t.Fatal("expected GSTIN validation error")
	}
}

func TestUpdateBusinessProfile(t *testing.T) {
	queries := newFakeQueries()
	svc := newTestService(t, queries)
	user := seedApprovedUser(t, queries, "owner@example.com", "s3cretpass")

	updated, err := svc.UpdateBusiness(context.Background(), uuidString(user.ID), BusinessInput{
		BusinessName:    "Sharma Pipes",
		GSTNumber:       "07AABCS1234E1Z5",
		BusinessState:   "Delhi",
		BusinessPincode: "110001",
	})
	if err != nil {
		t.Fatalf("update business: %v", err)
	}
	if updated.BusinessState != "Delhi" || updated.BusinessName != "Sharma Pipes" {
		t.Fatalf("unexpected profile: %+v", updated)
	}
}
