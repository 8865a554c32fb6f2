package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/config"
	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/store"
	"github.com/DanielHNCT/delivery-routing-sub000/pkg/model"
	"github.com/alicebob/miniredis/v2"
)

var testNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *store.KVStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	host, port, _ := net.SplitHostPort(mr.Addr())
	vc, err := store.NewValkeyClient(&config.Config{RedisHost: host, RedisPort: port})
	if err != nil {
		t.Fatalf("NewValkeyClient failed: %v", err)
	}
	t.Cleanup(func() { vc.Close() })
	return mr, store.NewKVStore(vc)
}

func fixedClock(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

func sampleManifest() *model.CachedManifest {
	return &model.CachedManifest{
		Societe: "PCP0010699",
		Driver:  "A187518",
		Date:    "2025-03-01",
		Actions: []model.PackageAction{
			{Index: 0, TrackingNumber: "CP123", ActionCode: "LIV"},
			{Index: 1, TrackingNumber: "CP124", ActionCode: "LIV"},
		},
		Fields:  model.ManifestFields{TourNumber: "T42", Summary: map[string]string{"total_colis": "2"}},
		RawText: "raw",
	}
}

func TestJitterTTLBounds(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	base, spread, floor := 900*time.Second, 180*time.Second, 600*time.Second
	for i := 0; i < 1000; i++ {
		got := JitterTTL(base, spread, floor, rnd)
		if got < 720*time.Second || got > 1080*time.Second {
			t.Fatalf("JitterTTL() = %v, want within [720s, 1080s]", got)
		}
	}
}

func TestJitterTTLGlobalSource(t *testing.T) {
	for i := 0; i < 100; i++ {
		got := JitterTTL(time.Minute, 10*time.Second, 0, nil)
		if got < 50*time.Second || got > 70*time.Second {
			t.Fatalf("JitterTTL() = %v, want within [50s, 70s]", got)
		}
	}
}

func TestJitterTTLFloor(t *testing.T) {
	tests := []struct {
		name   string
		base   time.Duration
		spread time.Duration
		floor  time.Duration
		want   time.Duration
	}{
		{"スプレッドなし", 15 * time.Minute, 0, 10 * time.Minute, 15 * time.Minute},
		{"基準値が下限未満", 5 * time.Minute, 0, 10 * time.Minute, 10 * time.Minute},
		{"負のスプレッド", 15 * time.Minute, -time.Minute, 0, 15 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JitterTTL(tt.base, tt.spread, tt.floor, nil); got != tt.want {
				t.Errorf("JitterTTL() = %v, want %v", got, tt.want)
			}
		})
	}

	rnd := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 1000; i++ {
		if got := JitterTTL(time.Minute, 5*time.Minute, 2*time.Minute, rnd); got < 2*time.Minute {
			t.Fatalf("JitterTTL() = %v, below floor", got)
		}
	}
}

func TestTTLPolicyNext(t *testing.T) {
	fixed := NewTTLPolicy(15*time.Minute, 3*time.Minute, 10*time.Minute, false, nil)
	for i := 0; i < 10; i++ {
		if got := fixed.Next(); got != 15*time.Minute {
			t.Fatalf("Next() without camouflage = %v, want 15m", got)
		}
	}

	jittered := NewTTLPolicy(15*time.Minute, 3*time.Minute, 10*time.Minute, true, rand.New(rand.NewPCG(5, 6)))
	seen := map[time.Duration]bool{}
	for i := 0; i < 50; i++ {
		got := jittered.Next()
		if got < 12*time.Minute || got > 18*time.Minute {
			t.Fatalf("Next() = %v out of bounds", got)
		}
		seen[got] = true
	}
	if len(seen) < 2 {
		t.Error("jittered TTL should vary between calls")
	}
}

func TestManifestCacheSetGet(t *testing.T) {
	mr, kv := newTestStore(t)
	now := testNow
	c := NewManifestCache(kv, NewTTLPolicy(15*time.Minute, 0, 0, false, nil))
	c.now = fixedClock(&now)
	ctx := context.Background()

	if err := c.Set(ctx, sampleManifest()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	key := store.TourneeKey("PCP0010699", "A187518", "2025-03-01")
	if ttl := mr.TTL(key); ttl != 15*time.Minute {
		t.Errorf("TTL = %v, want 15m", ttl)
	}

	now = now.Add(5 * time.Minute)
	got, found, err := c.Get(ctx, "PCP0010699", "A187518", "2025-03-01")
	if err != nil || !found {
		t.Fatalf("Get() found=%v err=%v", found, err)
	}
	if len(got.Actions) != 2 || got.Fields.Summary["total_colis"] != "2" {
		t.Errorf("Get() = %+v", got)
	}
	if got.AccessCount != 1 || !got.LastAccess.Equal(now) {
		t.Errorf("AccessCount=%d LastAccess=%v", got.AccessCount, got.LastAccess)
	}
	if got.FormatVersion != model.ManifestFormatVersion {
		t.Errorf("FormatVersion = %q", got.FormatVersion)
	}
	if ttl := mr.TTL(key); ttl != 10*time.Minute {
		t.Errorf("TTL after hit = %v, want remaining 10m", ttl)
	}

	raw, _ := mr.Get(key)
	var stored model.CachedManifest
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("stored entry is not JSON: %v", err)
	}
	if stored.AccessCount != 1 {
		t.Errorf("stored AccessCount = %d, want 1 (hit rewrites entry)", stored.AccessCount)
	}

	got, _, _ = c.Get(ctx, "PCP0010699", "A187518", "2025-03-01")
	if got.AccessCount != 2 {
		t.Errorf("second hit AccessCount = %d, want 2", got.AccessCount)
	}
}

func TestManifestCacheConcurrentHitsCountEveryAccess(t *testing.T) {
	mr, kv := newTestStore(t)
	c := NewManifestCache(kv, NewTTLPolicy(15*time.Minute, 0, 0, false, nil))
	ctx := context.Background()

	if err := c.Set(ctx, sampleManifest()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	const readers = 10
	var wg sync.WaitGroup
	errs := make(chan error, readers)
	for range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, found, err := c.Get(ctx, "PCP0010699", "A187518", "2025-03-01"); err != nil || !found {
				errs <- fmt.Errorf("found=%v err=%v", found, err)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Get: %v", err)
	}

	raw, _ := mr.Get(store.TourneeKey("PCP0010699", "A187518", "2025-03-01"))
	var stored model.CachedManifest
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		t.Fatalf("stored entry is not JSON: %v", err)
	}
	if stored.AccessCount != readers {
		t.Errorf("AccessCount = %d, want %d", stored.AccessCount, readers)
	}
}

func TestManifestCacheExpiredOnRead(t *testing.T) {
	mr, kv := newTestStore(t)
	now := testNow
	c := NewManifestCache(kv, NewTTLPolicy(15*time.Minute, 0, 0, false, nil))
	c.now = fixedClock(&now)
	ctx := context.Background()

	if err := c.Set(ctx, sampleManifest()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// ストアのTTLはまだ残っているが論理期限は過ぎている
	now = now.Add(15 * time.Minute)
	_, found, err := c.Get(ctx, "PCP0010699", "A187518", "2025-03-01")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("expired entry should be a miss")
	}
	if mr.Exists(store.TourneeKey("PCP0010699", "A187518", "2025-03-01")) {
		t.Error("expired entry should be deleted")
	}
}

func TestManifestCacheMiss(t *testing.T) {
	_, kv := newTestStore(t)
	c := NewManifestCache(kv, NewTTLPolicy(time.Minute, 0, 0, false, nil))
	got, found, err := c.Get(context.Background(), "PCP0010699", "A187518", "2025-03-01")
	if err != nil || found || got != nil {
		t.Errorf("Get() = %v, %v, %v, want miss", got, found, err)
	}
}

func TestManifestCacheDiscardsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"JSONでない", "not json"},
		{"旧フォーマット", `{"societe":"PCP0010699","format_version":"v0"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr, kv := newTestStore(t)
			c := NewManifestCache(kv, NewTTLPolicy(time.Minute, 0, 0, false, nil))
			key := store.TourneeKey("PCP0010699", "A187518", "2025-03-01")
			mr.Set(key, tt.value)

			_, found, err := c.Get(context.Background(), "PCP0010699", "A187518", "2025-03-01")
			if err != nil || found {
				t.Errorf("Get() found=%v err=%v, want miss", found, err)
			}
			if mr.Exists(key) {
				t.Error("malformed entry should be deleted")
			}
		})
	}
}

func TestManifestCacheDelete(t *testing.T) {
	mr, kv := newTestStore(t)
	c := NewManifestCache(kv, NewTTLPolicy(time.Minute, 0, 0, false, nil))
	ctx := context.Background()
	_ = c.Set(ctx, sampleManifest())

	if err := c.Delete(ctx, "PCP0010699", "A187518", "2025-03-01"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	key := store.TourneeKey("PCP0010699", "A187518", "2025-03-01")
	if mr.Exists(key) {
		t.Error("entry should be deleted")
	}
	members, _ := mr.Members(store.DriverIndexKey("PCP0010699", "A187518"))
	for _, m := range members {
		if m == key {
			t.Error("deleted key should be removed from driver index")
		}
	}
}

func TestTokenCache(t *testing.T) {
	mr, kv := newTestStore(t)
	now := testNow
	c := NewTokenCache(kv)
	c.now = fixedClock(&now)
	ctx := context.Background()

	tok := model.NewSessionToken("sso", "PCP0010699", "A187518", "PCP0010699_A187518", now.Add(-time.Hour), 24)
	if err := c.Set(ctx, tok); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	key := store.TokenKey("PCP0010699", "A187518")
	if ttl := mr.TTL(key); ttl != 23*time.Hour {
		t.Errorf("TTL = %v, want remaining 23h", ttl)
	}

	got, found, err := c.Get(ctx, "PCP0010699", "A187518")
	if err != nil || !found {
		t.Fatalf("Get() found=%v err=%v", found, err)
	}
	if got.Token != "sso" || got.Matricule != "PCP0010699_A187518" {
		t.Errorf("Get() = %+v", got)
	}

	now = now.Add(23 * time.Hour)
	if _, found, _ := c.Get(ctx, "PCP0010699", "A187518"); found {
		t.Error("expired token should be a miss")
	}
	if mr.Exists(key) {
		t.Error("expired token should be deleted on read")
	}
}

func TestTokenCacheSkipsExpired(t *testing.T) {
	mr, kv := newTestStore(t)
	c := NewTokenCache(kv)
	c.now = func() time.Time { return testNow }

	tok := model.NewSessionToken("sso", "PCP0010699", "A187518", "M", testNow.Add(-48*time.Hour), 24)
	if err := c.Set(context.Background(), tok); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if mr.Exists(store.TokenKey("PCP0010699", "A187518")) {
		t.Error("expired token should not be stored")
	}
}

func TestTokenCacheInvalidate(t *testing.T) {
	mr, kv := newTestStore(t)
	c := NewTokenCache(kv)
	ctx := context.Background()
	tok := model.NewSessionToken("sso", "PCP0010699", "A187518", "M", time.Now(), 24)
	_ = c.Set(ctx, tok)

	if err := c.Invalidate(ctx, "PCP0010699", "A187518"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if mr.Exists(store.TokenKey("PCP0010699", "A187518")) {
		t.Error("token should be deleted")
	}
}

func TestInvalidateDriver(t *testing.T) {
	mr, kv := newTestStore(t)
	c := New(kv, Options{ManifestTTL: time.Hour}, nil)
	ctx := context.Background()

	m1 := sampleManifest()
	m2 := sampleManifest()
	m2.Date = "2025-03-02"
	other := sampleManifest()
	other.Driver = "B000001"
	for _, m := range []*model.CachedManifest{m1, m2, other} {
		if err := c.Manifests.Set(ctx, m); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}
	_ = c.Tokens.Set(ctx, model.NewSessionToken("sso", "PCP0010699", "A187518", "M", time.Now(), 24))

	n, err := c.InvalidateDriver(ctx, "PCP0010699", "A187518")
	if err != nil {
		t.Fatalf("InvalidateDriver failed: %v", err)
	}
	if n != 3 {
		t.Errorf("InvalidateDriver() = %d, want 3", n)
	}
	for _, key := range []string{
		store.TourneeKey("PCP0010699", "A187518", "2025-03-01"),
		store.TourneeKey("PCP0010699", "A187518", "2025-03-02"),
		store.TokenKey("PCP0010699", "A187518"),
		store.DriverIndexKey("PCP0010699", "A187518"),
	} {
		if mr.Exists(key) {
			t.Errorf("%s should be deleted", key)
		}
	}
	if !mr.Exists(store.TourneeKey("PCP0010699", "B000001", "2025-03-01")) {
		t.Error("other driver's entry should survive")
	}
}

func TestCleanupExpired(t *testing.T) {
	mr, kv := newTestStore(t)
	ctx := context.Background()
	now := testNow
	c := New(kv, Options{ManifestTTL: time.Hour}, nil)
	c.Tokens.now = fixedClock(&now)
	c.Manifests.now = fixedClock(&now)
	c.Invalidator.now = fixedClock(&now)

	// A: マニフェストがストアから消失した索引
	_ = c.Manifests.Set(ctx, sampleManifest())
	mr.Del(store.TourneeKey("PCP0010699", "A187518", "2025-03-01"))

	// B: 論理期限切れのトークンとまだ有効なマニフェスト
	_ = c.Tokens.Set(ctx, model.NewSessionToken("sso", "PCP0010699", "B000001", "M", now.Add(-23*time.Hour), 24))
	live := sampleManifest()
	live.Driver = "B000001"
	_ = c.Manifests.Set(ctx, live)

	now = now.Add(2 * time.Hour)
	stats, err := c.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired failed: %v", err)
	}
	if stats.Indexes != 2 || stats.DanglingKeys != 1 || stats.ExpiredTokens != 1 || stats.EmptyIndexes != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if mr.Exists(store.TokenKey("PCP0010699", "B000001")) {
		t.Error("expired token should be deleted")
	}
	if !mr.Exists(store.TourneeKey("PCP0010699", "B000001", "2025-03-01")) {
		t.Error("live manifest should survive cleanup")
	}
	drivers, _ := mr.Members(store.KeyDriverIndexSet)
	if len(drivers) != 1 || drivers[0] != store.DriverIndexKey("PCP0010699", "B000001") {
		t.Errorf("driver set = %v", drivers)
	}
}

func TestDecoysPopulate(t *testing.T) {
	mr, kv := newTestStore(t)
	ctx := context.Background()
	policy := NewTTLPolicy(15*time.Minute, 3*time.Minute, 10*time.Minute, true, rand.New(rand.NewPCG(7, 8)))
	d := NewDecoys(kv, policy, rand.New(rand.NewPCG(9, 10)))

	n, err := d.Populate(ctx, 5)
	if err != nil {
		t.Fatalf("Populate failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Populate() = %d, want 5", n)
	}
	for _, key := range mr.Keys() {
		if !strings.HasPrefix(key, store.KeyPrefixDecoy) {
			t.Errorf("unexpected key outside decoy namespace: %s", key)
			continue
		}
		raw, _ := mr.Get(key)
		var m model.CachedManifest
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			t.Fatalf("decoy is not JSON: %v", err)
		}
		if len(m.Actions) != 0 {
			t.Errorf("decoy should have empty payload, got %d actions", len(m.Actions))
		}
		if ttl := mr.TTL(key); ttl < 12*time.Minute || ttl > 18*time.Minute {
			t.Errorf("decoy TTL = %v out of jitter bounds", ttl)
		}
	}
}

func TestDecoysDisabled(t *testing.T) {
	mr, kv := newTestStore(t)
	d := NewDecoys(kv, NewTTLPolicy(time.Minute, 0, 0, false, nil), nil)
	n, err := d.Populate(context.Background(), 5)
	if err != nil || n != 0 {
		t.Errorf("Populate() = %d, %v, want 0, nil", n, err)
	}
	if len(mr.Keys()) != 0 {
		t.Errorf("no keys should be written, got %v", mr.Keys())
	}
}

func TestDecoysNeverVisibleToManifestCache(t *testing.T) {
	_, kv := newTestStore(t)
	ctx := context.Background()
	policy := NewTTLPolicy(time.Hour, 0, 0, true, nil)
	d := NewDecoys(kv, policy, rand.New(rand.NewPCG(11, 12)))
	d.now = func() time.Time { return testNow }
	if _, err := d.Populate(ctx, 20); err != nil {
		t.Fatalf("Populate failed: %v", err)
	}

	c := NewManifestCache(kv, policy)
	// 同じ乱数列で生成されたsociete/ドライバー/日付を実キャッシュから引いてもヒットしない
	replay := NewDecoys(kv, policy, rand.New(rand.NewPCG(11, 12)))
	for i := 0; i < 20; i++ {
		societe, driver, date := replay.synthetic(testNow)
		if _, found, _ := c.Get(ctx, societe, driver, date); found {
			t.Fatalf("decoy for %s/%s/%s visible through manifest cache", societe, driver, date)
		}
	}
}
