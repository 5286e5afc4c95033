package services_test

import (
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"posd/internal/repos"
	"posd/internal/services"
)

func settingsFixture(t *testing.T) *services.SettingsService {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return services.NewSettingsService(repos.NewSettingsRepo(db))
}

func TestSettings_GetAbsent(t *testing.T) {
	svc := settingsFixture(t)
	v, err := svc.Get("no.such.key")
	if err != nil {
		t.Fatalf("absent key must not error: %v", err)
	}
	if v.Found {
		t.Fatalf("want found=false, got %+v", v)
	}
}

func TestSettings_SetGetUpsert(t *testing.T) {
	svc := settingsFixture(t)
	if err := svc.Set("store.name", "Corner Pharmacy"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Set("store.name", "Main St Pharmacy"); err != nil {
		t.Fatal(err)
	}
	v, err := svc.Get("store.name")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Found || v.Value != "Main St Pharmacy" {
		t.Fatalf("upsert failed: %+v", v)
	}
}

func TestSettings_BoolCoercion(t *testing.T) {
	svc := settingsFixture(t)
	if err := svc.SetBool("developer_mode", true); err != nil {
		t.Fatal(err)
	}
	b, err := svc.GetBool("developer_mode")
	if err != nil || !b {
		t.Fatalf("want true, got %v (%v)", b, err)
	}
	// Absent and garbage both read as false, no error.
	if b, err := svc.GetBool("missing"); err != nil || b {
		t.Fatalf("absent: want false, got %v (%v)", b, err)
	}
	if err := svc.Set("weird", "not-a-bool"); err != nil {
		t.Fatal(err)
	}
	if b, err := svc.GetBool("weird"); err != nil || b {
		t.Fatalf("garbage: want false, got %v (%v)", b, err)
	}
}

func TestSettings_WatchedKeyNotifies(t *testing.T) {
	svc := settingsFixture(t)

	var gotKey, gotValue string
	calls := 0
	svc.Subscribe(func(key, value string) {
		gotKey, gotValue = key, value
		calls++
	})

	if err := svc.Set("developer_mode", "true"); err != nil {
		t.Fatal(err)
	}
	if calls != 1 || gotKey != "developer_mode" || gotValue != "true" {
		t.Fatalf("want one notification for developer_mode, got %d (%s=%s)", calls, gotKey, gotValue)
	}

	// Unwatched keys stay silent.
	if err := svc.Set("store.name", "X"); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("unwatched key must not notify, got %d calls", calls)
	}
}
