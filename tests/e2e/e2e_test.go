//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type tagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ingredientResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type recipeResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       string  `json:"price"`
	Tags        []int64 `json:"tags"`
	Ingredients []int64 `json:"ingredients"`
}

func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("PLATEKEEP_BASE_URL", "http://localhost:8080")

	email := fmt.Sprintf("e2e-%s@example.com", strings.ToLower(ulid.Make().String()))
	password := "e2e-password"

	user := registerUser(t, baseURL, email, password)
	if user.Email != email {
		t.Fatalf("registered email = %q, want %q", user.Email, email)
	}

	token := issueToken(t, baseURL, email, password)

	me := getProfile(t, baseURL, token)
	if me.ID != user.ID {
		t.Fatalf("profile ID = %q, want %q", me.ID, user.ID)
	}

	tag := createTag(t, baseURL, token, "Dinner")
	ingredient := createIngredient(t, baseURL, token, "Garlic")

	recipe := createRecipe(t, baseURL, token, "Garlic pasta", tag.ID, ingredient.ID)
	if recipe.Price != "7.50" {
		t.Errorf("recipe price = %q, want 7.50", recipe.Price)
	}

	filtered := listRecipes(t, baseURL, token, fmt.Sprintf("?tags=%d", tag.ID))
	if len(filtered) != 1 || filtered[0].ID != recipe.ID {
		t.Fatalf("tag filter returned %d recipes, want the one created", len(filtered))
	}

	unmatched := listRecipes(t, baseURL, token, fmt.Sprintf("?tags=%d", tag.ID+1000))
	if len(unmatched) != 0 {
		t.Errorf("unmatched tag filter returned %d recipes, want 0", len(unmatched))
	}

	patched := patchRecipe(t, baseURL, token, recipe.ID, `{"title":"Garlic pasta deluxe"}`)
	if patched.Title != "Garlic pasta deluxe" {
		t.Errorf("patched title = %q", patched.Title)
	}
	if len(patched.Tags) != 1 {
		t.Errorf("patch dropped tags: %v", patched.Tags)
	}

	deleteRecipe(t, baseURL, token, recipe.ID)

	remaining := listRecipes(t, baseURL, token, "")
	if len(remaining) != 0 {
		t.Errorf("after delete, %d recipes remain", len(remaining))
	}

	revokeToken(t, baseURL, token)
	assertUnauthorized(t, baseURL, token)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func doJSON(t *testing.T, method, url, token, body string, wantStatus int, out any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d, want %d. Body: %s", method, url, resp.StatusCode, wantStatus, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			t.Fatalf("decode response: %v. Body: %s", err, respBody)
		}
	}
}

func registerUser(t *testing.T, baseURL, email, password string) userResponse {
	t.Helper()
	var user userResponse
	body := fmt.Sprintf(`{"email":%q,"password":%q,"name":"E2E"}`, email, password)
	doJSON(t, http.MethodPost, baseURL+"/user/create", "", body, http.StatusCreated, &user)
	return user
}

func issueToken(t *testing.T, baseURL, email, password string) string {
	t.Helper()
	var resp tokenResponse
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	doJSON(t, http.MethodPost, baseURL+"/user/token", "", body, http.StatusOK, &resp)
	if resp.Token == "" {
		t.Fatal("empty token")
	}
	return resp.Token
}

func getProfile(t *testing.T, baseURL, token string) userResponse {
	t.Helper()
	var user userResponse
	doJSON(t, http.MethodGet, baseURL+"/user/me", token, "", http.StatusOK, &user)
	return user
}

func createTag(t *testing.T, baseURL, token, name string) tagResponse {
	t.Helper()
	var tag tagResponse
	doJSON(t, http.MethodPost, baseURL+"/recipe/tags", token,
		fmt.Sprintf(`{"name":%q}`, name), http.StatusCreated, &tag)
	return tag
}

func createIngredient(t *testing.T, baseURL, token, name string) ingredientResponse {
	t.Helper()
	var ingredient ingredientResponse
	doJSON(t, http.MethodPost, baseURL+"/recipe/ingredients", token,
		fmt.Sprintf(`{"name":%q}`, name), http.StatusCreated, &ingredient)
	return ingredient
}

func createRecipe(t *testing.T, baseURL, token, title string, tagID, ingredientID int64) recipeResponse {
	t.Helper()
	var recipe recipeResponse
	var body bytes.Buffer
	fmt.Fprintf(&body,
		`{"title":%q,"time_minutes":25,"price":"7.50","tags":[%d],"ingredients":[%d]}`,
		title, tagID, ingredientID)
	doJSON(t, http.MethodPost, baseURL+"/recipe/recipes", token, body.String(), http.StatusCreated, &recipe)
	return recipe
}

func listRecipes(t *testing.T, baseURL, token, query string) []recipeResponse {
	t.Helper()
	var recipes []recipeResponse
	doJSON(t, http.MethodGet, baseURL+"/recipe/recipes"+query, token, "", http.StatusOK, &recipes)
	return recipes
}

func patchRecipe(t *testing.T, baseURL, token string, id int64, body string) recipeResponse {
	t.Helper()
	var recipe recipeResponse
	url := fmt.Sprintf("%s/recipe/recipes/%d", baseURL, id)
	doJSON(t, http.MethodPatch, url, token, body, http.StatusOK, &recipe)
	return recipe
}

func deleteRecipe(t *testing.T, baseURL, token string, id int64) {
	t.Helper()
	url := fmt.Sprintf("%s/recipe/recipes/%d", baseURL, id)
	doJSON(t, http.MethodDelete, url, token, "", http.StatusNoContent, nil)
}

func revokeToken(t *testing.T, baseURL, token string) {
	t.Helper()
	doJSON(t, http.MethodDelete, baseURL+"/user/token", token, "", http.StatusNoContent, nil)
}

func assertUnauthorized(t *testing.T, baseURL, token string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, baseURL+"/user/me", nil)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient().Do(req)
	if err != nil {
		t.Fatalf("GET /user/me: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("revoked token status = %d, want 401", resp.StatusCode)
	}
}
