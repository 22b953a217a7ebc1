package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/altproje-dev/altproje/db"
	"github.com/altproje-dev/altproje/internal/models"
	"github.com/altproje-dev/altproje/internal/types"
)

type userListRow struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	SchoolCode      string `json:"schoolCode"`
	SubmissionCount int64  `json:"submissionCount"`
}

func TestAdminListUsers(t *testing.T) {
	engine, _ := setupTest(t)
	_, adminToken := createUser(t, "Yönetici", "admin@okul.edu.tr", types.RoleAdmin, "")
	teacher, teacherToken := createUser(t, "Ayşe Yılmaz", "ayse@okul.edu.tr", types.RoleOgretmen, "123456")

	seedSubmission(t, teacher.ID)
	seedSubmission(t, teacher.ID)

	resp := perform(t, engine, http.MethodGet, "/api/admin/users", teacherToken, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("non-admin list status = %d, want 403", resp.Code)
	}

	resp = perform(t, engine, http.MethodGet, "/api/admin/users", adminToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var rows []userListRow
	if err := json.Unmarshal(resp.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.Email] = row.SubmissionCount
	}
	if counts["ayse@okul.edu.tr"] != 2 {
		t.Errorf("teacher submissionCount = %d, want 2", counts["ayse@okul.edu.tr"])
	}
	if counts["admin@okul.edu.tr"] != 0 {
		t.Errorf("admin submissionCount = %d, want 0", counts["admin@okul.edu.tr"])
	}
}

func TestAdminUpdateUser(t *testing.T) {
	engine, _ := setupTest(t)
	_, adminToken := createUser(t, "Yönetici", "admin@okul.edu.tr", types.RoleAdmin, "")
	teacher, _ := createUser(t, "Ayşe Yılmaz", "ayse@okul.edu.tr", types.RoleOgretmen, "123456")

	t.Run("assigns a restricted role", func(t *testing.T) {
		resp := perform(t, engine, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", teacher.ID), adminToken, gin.H{
			"name": "Ayşe Yılmaz",
			"role": types.RoleTubitakOkulYetkilisi,
		})
		if resp.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
		}

		var reloaded models.User
		if err := db.DB.First(&reloaded, teacher.ID).Error; err != nil {
			t.Fatalf("failed to reload user: %v", err)
		}
		if reloaded.Role != types.RoleTubitakOkulYetkilisi {
			t.Errorf("role = %q, want %s", reloaded.Role, types.RoleTubitakOkulYetkilisi)
		}
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		resp := perform(t, engine, http.MethodPut, fmt.Sprintf("/api/admin/users/%d", teacher.ID), adminToken, gin.H{
			"name": "Ayşe Yılmaz",
			"role": "SUPERUSER",
		})
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.Code)
		}
	})

	t.Run("missing user is 404", func(t *testing.T) {
		resp := perform(t, engine, http.MethodPut, "/api/admin/users/99999", adminToken, gin.H{
			"name": "Kimse",
			"role": types.RoleOgrenci,
		})
		if resp.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.Code)
		}
	})
}

func TestAdminDeleteUser(t *testing.T) {
	engine, _ := setupTest(t)
	admin, adminToken := createUser(t, "Yönetici", "admin@okul.edu.tr", types.RoleAdmin, "")
	teacher, _ := createUser(t, "Ayşe Yılmaz", "ayse@okul.edu.tr", types.RoleOgretmen, "123456")

	sub := seedSubmission(t, teacher.ID)

	t.Run("cannot delete own account", func(t *testing.T) {
		resp := perform(t, engine, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", admin.ID), adminToken, nil)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400, body = %s", resp.Code, resp.Body.String())
		}
	})

	t.Run("delete removes user and their submissions", func(t *testing.T) {
		resp := perform(t, engine, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", teacher.ID), adminToken, nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
		}

		var userCount int64
		if err := db.DB.Model(&models.User{}).Where("id = ?", teacher.ID).Count(&userCount).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if userCount != 0 {
			t.Errorf("user still listed after delete")
		}

		var subCount int64
		if err := db.DB.Model(&models.Submission{}).Where("id = ?", sub.ID).Count(&subCount).Error; err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if subCount != 0 {
			t.Errorf("submission survived owner deletion")
		}
	})
}
