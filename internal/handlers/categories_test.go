package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestCategoriesWriteRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	resp := doJSON(t, "POST", env.Server.URL+"/categories", `{"name":"X"}`, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()

	visitor := sessionCookie(t, env.Valkey, false)
	resp = doJSON(t, "POST", env.Server.URL+"/categories", `{"name":"X"}`, visitor)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCategoriesCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	admin := sessionCookie(t, env.Valkey, true)

	name := "test-api-cat-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, env.DB, name) })

	resp := doJSON(t, "POST", env.Server.URL+"/categories", fmt.Sprintf(`{"name":%q}`, name), admin)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	created := decodeBody(t, resp)
	if created["name"] != name {
		t.Errorf("name = %v, want %q", created["name"], name)
	}

	// Duplicate name conflicts, even padded.
	resp = doJSON(t, "POST", env.Server.URL+"/categories", fmt.Sprintf(`{"name":"  %s  "}`, name), admin)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", resp.StatusCode)
	}
	got := decodeBody(t, resp)
	if got["code"] != "C002" {
		t.Errorf("code = %v, want C002", got["code"])
	}

	// Listing is public and includes the new category.
	resp = doJSON(t, "GET", env.Server.URL+"/categories", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	defer resp.Body.Close()

	var list []map[string]any
	if err := decodeInto(t, resp, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	var found bool
	for _, c := range list {
		if c["name"] == name {
			found = true
		}
	}
	if !found {
		t.Error("created category missing from public listing")
	}
}

func TestCategoriesRename(t *testing.T) {
	env := newTestEnv(t)
	admin := sessionCookie(t, env.Valkey, true)

	oldName := "test-api-ren-a-" + uuid.NewString()[:8]
	newName := "test-api-ren-b-" + uuid.NewString()[:8]
	takenName := "test-api-ren-c-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, env.DB, oldName, newName, takenName) })

	resp := doJSON(t, "POST", env.Server.URL+"/categories", fmt.Sprintf(`{"name":%q}`, oldName), admin)
	created := decodeBody(t, resp)
	id := created["id"].(string)

	resp = doJSON(t, "POST", env.Server.URL+"/categories", fmt.Sprintf(`{"name":%q}`, takenName), admin)
	resp.Body.Close()

	t.Run("rename to taken name conflicts", func(t *testing.T) {
		resp := doJSON(t, "PUT", env.Server.URL+"/categories/"+id, fmt.Sprintf(`{"name":%q}`, takenName), admin)
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("status = %d, want 409", resp.StatusCode)
		}
		resp.Body.Close()
	})

	t.Run("rename succeeds", func(t *testing.T) {
		resp := doJSON(t, "PUT", env.Server.URL+"/categories/"+id, fmt.Sprintf(`{"name":%q}`, newName), admin)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		got := decodeBody(t, resp)
		if got["name"] != newName {
			t.Errorf("name = %v, want %q", got["name"], newName)
		}
	})

	t.Run("unknown id gives 404", func(t *testing.T) {
		resp := doJSON(t, "PUT", env.Server.URL+"/categories/"+uuid.NewString(), `{"name":"whatever"}`, admin)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
		got := decodeBody(t, resp)
		if got["code"] != "C001" {
			t.Errorf("code = %v, want C001", got["code"])
		}
	})
}

func TestCategoriesDeleteRemovesPosts(t *testing.T) {
	env := newTestEnv(t)
	admin := sessionCookie(t, env.Valkey, true)

	name := "test-api-catdel-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanCategories(t, env.DB, name) })

	// A post in the category, created through the API.
	body := fmt.Sprintf(`{"title":"Orphan","content":"Body","categoryName":%q}`, name)
	resp := doJSON(t, "POST", env.Server.URL+"/posts", body, admin)
	created := decodeBody(t, resp)
	postID := created["id"].(string)
	category := created["category"].(map[string]any)
	categoryID := category["id"].(string)

	resp = doJSON(t, "DELETE", env.Server.URL+"/categories/"+categoryID, "", admin)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}
	resp.Body.Close()

	// The owned post went with it.
	resp = doJSON(t, "GET", env.Server.URL+"/posts/"+postID, "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("post status = %d, want 404 after category delete", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCategoriesDeleteNotFound(t *testing.T) {
	env := newTestEnv(t)
	admin := sessionCookie(t, env.Valkey, true)

	resp := doJSON(t, "DELETE", env.Server.URL+"/categories/"+uuid.NewString(), "", admin)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCategoriesCreateBlankName(t *testing.T) {
	env := newTestEnv(t)
	admin := sessionCookie(t, env.Valkey, true)

	resp := doJSON(t, "POST", env.Server.URL+"/categories", `{"name":"   "}`, admin)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	got := decodeBody(t, resp)
	if got["code"] != "V001" {
		t.Errorf("code = %v, want V001", got["code"])
	}
}
