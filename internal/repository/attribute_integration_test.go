//go:build integration

package repository

import (
	"testing"
	"time"

	"github.com/platekeep/platekeep/internal/model"
	"github.com/platekeep/platekeep/internal/testutil"
)

func newTestTag(ownerID, name string) *model.Tag {
	return &model.Tag{Name: name, OwnerID: ownerID, CreatedAt: time.Now().UTC()}
}

func newTestIngredient(ownerID, name string) *model.Ingredient {
	return &model.Ingredient{Name: name, OwnerID: ownerID, CreatedAt: time.Now().UTC()}
}

func TestIntegrationTagRepository_ListOrderedByNameDesc(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("tags"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	for _, name := range []string{"Breakfast", "Vegan", "Dessert"} {
		if err := repo.CreateTag(ctx, newTestTag(user.ID, name)); err != nil {
			t.Fatalf("CreateTag failed: %v", err)
		}
	}

	tags, err := repo.ListTags(ctx, AttributeFilter{OwnerID: user.ID})
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}

	want := []string{"Vegan", "Dessert", "Breakfast"}
	if len(tags) != len(want) {
		t.Fatalf("Expected %d tags, got %d", len(want), len(tags))
	}
	for i, name := range want {
		if tags[i].Name != name {
			t.Errorf("tags[%d].Name = %q, want %q", i, tags[i].Name, name)
		}
	}
}

func TestIntegrationTagRepository_ListScopedToOwner(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("owner"))
	other := testutil.NewTestUser(t, testutil.UniqueEmail("other"))
	for _, user := range []*model.User{owner, other} {
		if err := repo.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	if err := repo.CreateTag(ctx, newTestTag(owner.ID, "Mine")); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if err := repo.CreateTag(ctx, newTestTag(other.ID, "Theirs")); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	tags, err := repo.ListTags(ctx, AttributeFilter{OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "Mine" {
		t.Errorf("Expected only the owner's tag, got %d tags", len(tags))
	}
}

func TestIntegrationTagRepository_AssignedOnlyDeduplicates(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("assigned"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	assigned := newTestTag(user.ID, "Assigned")
	unassigned := newTestTag(user.ID, "Unassigned")
	if err := repo.CreateTag(ctx, assigned); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if err := repo.CreateTag(ctx, unassigned); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	// The same tag on two recipes must appear once.
	for _, title := range []string{"Pancakes", "Waffles"} {
		recipe := testutil.NewTestRecipe(t, user.ID, title)
		recipe.TagIDs = []int64{assigned.ID}
		if err := repo.CreateRecipe(ctx, recipe); err != nil {
			t.Fatalf("CreateRecipe failed: %v", err)
		}
	}

	tags, err := repo.ListTags(ctx, AttributeFilter{OwnerID: user.ID, AssignedOnly: true})
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("Expected 1 assigned tag, got %d", len(tags))
	}
	if tags[0].Name != "Assigned" {
		t.Errorf("Expected the assigned tag, got %q", tags[0].Name)
	}
}

func TestIntegrationTagRepository_GetByIDsScopedToOwner(t *testing.T) {
	ctx, repo := newTestEnv(t)

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("idowner"))
	other := testutil.NewTestUser(t, testutil.UniqueEmail("idother"))
	for _, user := range []*model.User{owner, other} {
		if err := repo.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	mine := newTestTag(owner.ID, "Mine")
	theirs := newTestTag(other.ID, "Theirs")
	if err := repo.CreateTag(ctx, mine); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if err := repo.CreateTag(ctx, theirs); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	tags, err := repo.GetTagsByIDs(ctx, owner.ID, []int64{mine.ID, theirs.ID})
	if err != nil {
		t.Fatalf("GetTagsByIDs failed: %v", err)
	}
	if len(tags) != 1 || tags[0].ID != mine.ID {
		t.Errorf("Expected only the owner's tag, got %d tags", len(tags))
	}
}

func TestIntegrationIngredientRepository_ListAndAssignedOnly(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueEmail("ingredients"))
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	salt := newTestIngredient(user.ID, "Salt")
	flour := newTestIngredient(user.ID, "Flour")
	if err := repo.CreateIngredient(ctx, salt); err != nil {
		t.Fatalf("CreateIngredient failed: %v", err)
	}
	if err := repo.CreateIngredient(ctx, flour); err != nil {
		t.Fatalf("CreateIngredient failed: %v", err)
	}

	all, err := repo.ListIngredients(ctx, AttributeFilter{OwnerID: user.ID})
	if err != nil {
		t.Fatalf("ListIngredients failed: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Salt" || all[1].Name != "Flour" {
		t.Errorf("Expected [Salt Flour] (name desc), got %d ingredients", len(all))
	}

	recipe := testutil.NewTestRecipe(t, user.ID, "Bread")
	recipe.IngredientIDs = []int64{flour.ID}
	if err := repo.CreateRecipe(ctx, recipe); err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	assigned, err := repo.ListIngredients(ctx, AttributeFilter{OwnerID: user.ID, AssignedOnly: true})
	if err != nil {
		t.Fatalf("ListIngredients failed: %v", err)
	}
	if len(assigned) != 1 || assigned[0].ID != flour.ID {
		t.Errorf("Expected only the assigned ingredient, got %d", len(assigned))
	}
}
