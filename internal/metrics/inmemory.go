package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered uint64
	TokensIssued    uint64
	AuthCacheHits   uint64
	AuthCacheMisses uint64
	RecipesCreated  uint64
	RecipesUpdated  uint64
	RecipesDeleted  uint64
	ImagesUploaded  uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	usersRegistered uint64
	tokensIssued    uint64
	authCacheHits   uint64
	authCacheMisses uint64
	recipesCreated  uint64
	recipesUpdated  uint64
	recipesDeleted  uint64
	imagesUploaded  uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered: atomic.LoadUint64(&m.usersRegistered),
		TokensIssued:    atomic.LoadUint64(&m.tokensIssued),
		AuthCacheHits:   atomic.LoadUint64(&m.authCacheHits),
		AuthCacheMisses: atomic.LoadUint64(&m.authCacheMisses),
		RecipesCreated:  atomic.LoadUint64(&m.recipesCreated),
		RecipesUpdated:  atomic.LoadUint64(&m.recipesUpdated),
		RecipesDeleted:  atomic.LoadUint64(&m.recipesDeleted),
		ImagesUploaded:  atomic.LoadUint64(&m.imagesUploaded),
	}
}

// IncUserRegistered increments the registered users counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncTokenIssued increments the issued tokens counter.
func (m *InMemoryRecorder) IncTokenIssued() {
	atomic.AddUint64(&m.tokensIssued, 1)
}

// IncAuthCacheHit increments the auth cache hit counter.
func (m *InMemoryRecorder) IncAuthCacheHit() {
	atomic.AddUint64(&m.authCacheHits, 1)
}

// IncAuthCacheMiss increments the auth cache miss counter.
func (m *InMemoryRecorder) IncAuthCacheMiss() {
	atomic.AddUint64(&m.authCacheMisses, 1)
}

// IncRecipeCreated increments the recipes created counter.
func (m *InMemoryRecorder) IncRecipeCreated() {
	atomic.AddUint64(&m.recipesCreated, 1)
}

// IncRecipeUpdated increments the recipes updated counter.
func (m *InMemoryRecorder) IncRecipeUpdated() {
	atomic.AddUint64(&m.recipesUpdated, 1)
}

// IncRecipeDeleted increments the recipes deleted counter.
func (m *InMemoryRecorder) IncRecipeDeleted() {
	atomic.AddUint64(&m.recipesDeleted, 1)
}

// IncImageUploaded increments the uploaded images counter.
func (m *InMemoryRecorder) IncImageUploaded() {
	atomic.AddUint64(&m.imagesUploaded, 1)
}
