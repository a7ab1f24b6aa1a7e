package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fitlane/nutrition-api/internal/core/domain"
	"github.com/fitlane/nutrition-api/internal/token"
)

type stubUsers struct {
	byPhone map[string]*domain.User
}

func (s *stubUsers) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	if u, ok := s.byPhone[phone]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByNickname(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUsers) FindByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUsers) Upsert(_ context.Context, u *domain.User) (*domain.User, error) { return u, nil }
func (s *stubUsers) List(context.Context, int64, int64) ([]*domain.User, error)     { return nil, nil }
func (s *stubUsers) Count(context.Context) (int64, error)                           { return 0, nil }
func (s *stubUsers) CountRegistered(context.Context) (int64, error)                 { return 0, nil }
func (s *stubUsers) SetBlocked(context.Context, string, bool) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *stubUsers) Delete(context.Context, string) error { return nil }

type stubAdmins struct {
	byUsername map[string]*domain.Admin
}

func (s *stubAdmins) FindByUsername(_ context.Context, username string) (*domain.Admin, error) {
	if a, ok := s.byUsername[username]; ok {
		clone := *a
		return &clone, nil
	}
	return nil, domain.ErrAdminNotFound
}
func (s *stubAdmins) Create(_ context.Context, a *domain.Admin) (*domain.Admin, error) {
	return a, nil
}
func (s *stubAdmins) Update(_ context.Context, a *domain.Admin) (*domain.Admin, error) {
	return a, nil
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestUserGuard_ValidToken(t *testing.T) {
	issuer := token.NewIssuer("secret")
	users := &stubUsers{byPhone: map[string]*domain.User{
		"+79990000000": {Phone: "+79990000000", Nickname: "alice", PasswordHash: "x"},
	}}

	raw, err := issuer.Issue(token.Claims{Subject: "+79990000000"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := User(issuer, users)(func(c echo.Context) error {
		called = true
		user, ok := c.Get(UserKey).(*domain.User)
		if !ok || user.Phone != "+79990000000" {
			t.Fatalf("resolved user not injected: %#v", c.Get(UserKey))
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
}

func TestUserGuard_Rejections(t *testing.T) {
	issuer := token.NewIssuer("secret")
	users := &stubUsers{byPhone: map[string]*domain.User{
		"+79991111111": {Phone: "+79991111111", Blocked: true, PasswordHash: "x"},
	}}
	guard := User(issuer, users)

	ghost, _ := issuer.Issue(token.Claims{Subject: "+79990000000"})
	blocked, _ := issuer.Issue(token.Claims{Subject: "+79991111111"})
	foreign, _ := token.NewIssuer("other").Issue(token.Claims{Subject: "+79990000000"})

	cases := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"deleted identity", "Bearer " + ghost, http.StatusUnauthorized},
		{"blocked user", "Bearer " + blocked, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, called := invoke(t, guard, tc.header)
			if called {
				t.Fatal("next must not be called")
			}
			if rec.Code != tc.code {
				t.Fatalf("status = %d, want %d", rec.Code, tc.code)
			}
		})
	}
}

func TestAdminGuard_ValidToken(t *testing.T) {
	issuer := token.NewIssuer("secret")
	admins := &stubAdmins{byUsername: map[string]*domain.Admin{
		"root": {Username: "root", Superadmin: true},
	}}

	raw, _ := issuer.Issue(token.Claims{Subject: "root", Admin: true})

	rec, called := invoke(t, Admin(issuer, admins), "Bearer "+raw)
	if !called {
		t.Fatalf("next not called, status %d", rec.Code)
	}
}

func TestAdminGuard_RejectsUserToken(t *testing.T) {
	issuer := token.NewIssuer("secret")
	// Deliberate collision: a user whose phone-subject equals an admin
	// username must still be refused without the admin claim.
	admins := &stubAdmins{byUsername: map[string]*domain.Admin{
		"+79990000000": {Username: "+79990000000"},
	}}

	raw, _ := issuer.Issue(token.Claims{Subject: "+79990000000"})

	rec, called := invoke(t, Admin(issuer, admins), "Bearer "+raw)
	if called {
		t.Fatal("user token must not pass the admin guard")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestAdminGuard_UnknownAdmin(t *testing.T) {
	issuer := token.NewIssuer("secret")
	admins := &stubAdmins{byUsername: map[string]*domain.Admin{}}

	raw, _ := issuer.Issue(token.Claims{Subject: "ghost", Admin: true})

	rec, called := invoke(t, Admin(issuer, admins), "Bearer "+raw)
	if called {
		t.Fatal("unknown admin must not pass the guard")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
