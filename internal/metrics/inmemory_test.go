package metrics

import "testing"

func TestInMemoryRecorder_Counters(t *testing.T) {
	rec := NewInMemory()

	rec.IncUserRegistered()
	rec.IncTokenIssued()
	rec.IncTokenIssued()
	rec.IncAuthCacheHit()
	rec.IncAuthCacheMiss()
	rec.IncRecipeCreated()
	rec.IncRecipeUpdated()
	rec.IncRecipeDeleted()
	rec.IncImageUploaded()

	snap := rec.Snapshot()

	if snap.UsersRegistered != 1 {
		t.Errorf("UsersRegistered = %d, want 1", snap.UsersRegistered)
	}
	if snap.TokensIssued != 2 {
		t.Errorf("TokensIssued = %d, want 2", snap.TokensIssued)
	}
	if snap.AuthCacheHits != 1 || snap.AuthCacheMisses != 1 {
		t.Errorf("cache counters = %d/%d, want 1/1", snap.AuthCacheHits, snap.AuthCacheMisses)
	}
	if snap.RecipesCreated != 1 || snap.RecipesUpdated != 1 || snap.RecipesDeleted != 1 {
		t.Error("recipe counters should each be 1")
	}
	if snap.ImagesUploaded != 1 {
		t.Errorf("ImagesUploaded = %d, want 1", snap.ImagesUploaded)
	}
}
