package acceptance_tests

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"recipe-planner/internal/app"
	"recipe-planner/internal/config"
	"recipe-planner/internal/database"
	"recipe-planner/internal/ingredient"
	"recipe-planner/internal/shopping"
	"recipe-planner/internal/storage"

	"go.uber.org/zap"
)

const recipePage = `<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
  {"@type":"WebPage","name":"Blog"},
  {"@type":["Recipe"],"name":"Sunday Pancakes",
   "recipeIngredient":["250 g flour","3 eggs","500 ml milk"]}
]}
</script></head><body><h1>Blog</h1></body></html>`

// --- Acceptance Test ---
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()
	tempDir := t.TempDir()

	// 1. A recipe site to clip from
	var pageHits atomic.Int32
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageHits.Add(1)
		fmt.Fprint(w, recipePage)
	}))
	defer site.Close()

	// 2. Real database and application
	cfg := &config.Config{
		DatabasePath: filepath.Join(tempDir, "planner.db"),
		JWTSecret:    "acceptance",
		TokenTTL:     time.Hour,
	}
	db, err := database.NewDB(cfg.DatabasePath, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	application, err := app.NewApp(cfg, db, zap.NewNop(), site.Client())
	if err != nil {
		t.Fatalf("Failed to create app: %v", err)
	}

	alice, err := application.CreateUser(ctx, "alice")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	token, err := application.IssueToken(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	me, err := application.Authenticate(ctx, token)
	if err != nil || me.ID != alice.ID {
		t.Fatalf("Failed to authenticate: %v", err)
	}
	owner := me.ID

	// --- 3. Step 1: Ingredients in shop order ---
	t.Log("--- Step 1: Ingredients ---")
	for _, in := range []struct{ name, unit string }{{"milk", "ml"}, {"eggs", "pcs"}, {"flour", "g"}} {
		unit, err := application.UnitByName(ctx, in.unit)
		if err != nil {
			t.Fatalf("Unknown unit %s: %v", in.unit, err)
		}
		if _, err := application.AddIngredient(ctx, owner, ingredient.NewIngredient{Name: in.name, UnitID: unit.ID}); err != nil {
			t.Fatalf("Failed to add %s: %v", in.name, err)
		}
	}
	flour, _ := application.ResolveIngredient(ctx, owner, "flour")
	if _, err := application.MoveIngredient(ctx, owner, flour.ID, 1); err != nil {
		t.Fatalf("Failed to move flour: %v", err)
	}

	// --- 4. Step 2: Import ---
	t.Log("--- Step 2: Importing Recipe ---")
	imported, err := application.ImportRecipe(ctx, owner, site.URL, false)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n := pageHits.Load(); n != 1 {
		t.Errorf("Expected 1 page fetch, got %d", n)
	}
	if imported.Recipe.Name != "Sunday Pancakes" || len(imported.Recipe.Items) != 3 {
		t.Fatalf("Unexpected recipe: %+v", imported.Recipe)
	}

	// --- 5. Step 3: Shopping ---
	t.Log("--- Step 3: Shopping List ---")
	list, err := application.CreateList(ctx, owner, "weekend")
	if err != nil {
		t.Fatalf("Failed to create list: %v", err)
	}
	if _, err := application.AddQuantity(ctx, owner, list.ID, flour.ID, shopping.Manual(), 100); err != nil {
		t.Fatalf("Failed to add flour: %v", err)
	}
	if _, err := application.AddRecipeToList(ctx, owner, list.ID, imported.Recipe.ID, nil); err != nil {
		t.Fatalf("Failed to add recipe: %v", err)
	}

	full, err := application.List(ctx, owner, list.ID)
	if err != nil {
		t.Fatalf("Failed to read list: %v", err)
	}
	var order []string
	for _, it := range full.Items {
		order = append(order, fmt.Sprintf("%s=%d", it.Name, it.Total))
	}
	if fmt.Sprint(order) != "[flour=350 milk=500 eggs=3]" {
		t.Errorf("Unexpected list: %v", order)
	}

	// --- 6. Step 4: Export only writes what changed ---
	t.Log("--- Step 4: Exporting ---")
	store, err := storage.NewRecipeStore(filepath.Join(tempDir, "export"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if res, err := application.ExportRecipes(ctx, owner, store); err != nil || res.Written != 1 {
		t.Fatalf("Expected 1 written, got %+v, %v", res, err)
	}
	if res, err := application.ExportRecipes(ctx, owner, store); err != nil || res.Unchanged != 1 || res.Written != 0 {
		t.Fatalf("Expected 1 unchanged, got %+v, %v", res, err)
	}

	// --- 7. Step 5: Deleting the recipe leaves the manual flour ---
	t.Log("--- Step 5: Deleting Recipe ---")
	if err := application.DeleteRecipe(ctx, owner, imported.Recipe.ID); err != nil {
		t.Fatalf("Failed to delete recipe: %v", err)
	}
	full, err = application.List(ctx, owner, list.ID)
	if err != nil {
		t.Fatalf("Failed to read list: %v", err)
	}
	if len(full.Items) != 1 || full.Items[0].Total != 100 {
		t.Errorf("Expected only 100 flour left, got %+v", full.Items)
	}

	snapshots, err := store.All()
	if err != nil || len(snapshots) != 1 {
		t.Errorf("Expected the exported snapshot to survive, got %d, %v", len(snapshots), err)
	}
}
