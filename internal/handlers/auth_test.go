package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/altproje-dev/altproje/internal/types"
)

func TestRegisterLoginMe(t *testing.T) {
	engine, _ := setupTest(t)

	resp := perform(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":       "Ayşe Yılmaz",
		"email":      "Ayse@Okul.Edu.Tr",
		"password":   "sifre123",
		"schoolCode": "123456",
		"role":       types.RoleOgretmen,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", resp.Code, resp.Body.String())
	}

	body := decodeBody(t, resp)
	user, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("register response missing user: %v", body)
	}
	if user["email"] != "ayse@okul.edu.tr" {
		t.Errorf("email = %v, want lowercased ayse@okul.edu.tr", user["email"])
	}
	if user["role"] != types.RoleOgretmen {
		t.Errorf("role = %v, want %s", user["role"], types.RoleOgretmen)
	}

	resp = perform(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ayse@okul.edu.tr",
		"password": "sifre123",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", resp.Code, resp.Body.String())
	}

	body = decodeBody(t, resp)
	token, ok := body["token"].(string)
	if !ok || token == "" {
		t.Fatalf("login response missing token: %v", body)
	}

	resp = perform(t, engine, http.MethodGet, "/api/auth/me", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("me status = %d, body = %s", resp.Code, resp.Body.String())
	}
}

func TestRegisterRejections(t *testing.T) {
	tests := []struct {
		name       string
		payload    gin.H
		wantStatus int
	}{
		{
			name: "school code with letters",
			payload: gin.H{
				"name": "Veli Kaya", "email": "veli@okul.edu.tr", "password": "sifre123",
				"schoolCode": "12A456", "role": types.RoleOgrenci,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "admin role not self-service",
			payload: gin.H{
				"name": "Veli Kaya", "email": "veli@okul.edu.tr", "password": "sifre123",
				"schoolCode": "123456", "role": types.RoleAdmin,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "school official role not self-service",
			payload: gin.H{
				"name": "Veli Kaya", "email": "veli@okul.edu.tr", "password": "sifre123",
				"schoolCode": "123456", "role": types.RoleTubitakOkulYetkilisi,
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "short password",
			payload: gin.H{
				"name": "Veli Kaya", "email": "veli@okul.edu.tr", "password": "123",
				"schoolCode": "123456", "role": types.RoleOgrenci,
			},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := setupTest(t)

			resp := perform(t, engine, http.MethodPost, "/api/auth/register", "", tt.payload)
			if resp.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body = %s", resp.Code, tt.wantStatus, resp.Body.String())
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	engine, _ := setupTest(t)
	createUser(t, "Ayşe Yılmaz", "ayse@okul.edu.tr", types.RoleOgretmen, "123456")

	resp := perform(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":       "Başka Ayşe",
		"email":      "ayse@okul.edu.tr",
		"password":   "sifre123",
		"schoolCode": "123456",
		"role":       types.RoleOgrenci,
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body = %s", resp.Code, resp.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	engine, _ := setupTest(t)
	createUser(t, "Ayşe Yılmaz", "ayse@okul.edu.tr", types.RoleOgretmen, "123456")

	resp := perform(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ayse@okul.edu.tr",
		"password": "yanlis-sifre",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body = %s", resp.Code, resp.Body.String())
	}
}

func TestMeWithoutToken(t *testing.T) {
	engine, _ := setupTest(t)

	resp := perform(t, engine, http.MethodGet, "/api/auth/me", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	engine, _ := setupTest(t)
	_, token := createUser(t, "Ayşe Yılmaz", "ayse@okul.edu.tr", types.RoleOgretmen, "123456")

	t.Run("rename and change email", func(t *testing.T) {
		resp := perform(t, engine, http.MethodPut, "/api/profile", token, gin.H{
			"name":  "Ayşe Demir",
			"email": "ayse.demir@okul.edu.tr",
		})
		if resp.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
		}

		body := decodeBody(t, resp)
		user := body["user"].(map[string]interface{})
		if user["name"] != "Ayşe Demir" {
			t.Errorf("name = %v, want Ayşe Demir", user["name"])
		}
	})

	t.Run("password change requires current password", func(t *testing.T) {
		resp := perform(t, engine, http.MethodPut, "/api/profile", token, gin.H{
			"name":        "Ayşe Demir",
			"email":       "ayse.demir@okul.edu.tr",
			"newPassword": "yenisifre",
		})
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400, body = %s", resp.Code, resp.Body.String())
		}
	})

	t.Run("email taken by another user", func(t *testing.T) {
		createUser(t, "Veli Kaya", "veli@okul.edu.tr", types.RoleOgrenci, "123456")

		resp := perform(t, engine, http.MethodPut, "/api/profile", token, gin.H{
			"name":  "Ayşe Demir",
			"email": "veli@okul.edu.tr",
		})
		if resp.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409, body = %s", resp.Code, resp.Body.String())
		}
	})
}
