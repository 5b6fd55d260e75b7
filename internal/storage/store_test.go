package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// createTestStore creates a throwaway SQLite database for testing
func createTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "dayplan-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	store, err := NewStore(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("Failed to create Store: %v", err)
	}

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

// makeTestAllocation creates an AllocationRecord with sensible defaults
func makeTestAllocation(userID, date string, hours float64) *AllocationRecord {
	allocations, _ := json.Marshal([]map[string]any{
		{"project_id": "p1", "project_name": "Work", "percentage": 100, "hours": hours},
	})
	return &AllocationRecord{
		UserID:             userID,
		Date:               date,
		TotalWorkHours:     hours,
		ProjectAllocations: allocations,
	}
}

// makeTestEntry creates a TimeEntryRecord with sensible defaults
func makeTestEntry(userID, date, taskID string) *TimeEntryRecord {
	return &TimeEntryRecord{
		UserID:          userID,
		Date:            date,
		TaskID:          taskID,
		ProjectID:       "p1",
		ProjectName:     "Work",
		TaskName:        "Task " + taskID,
		DurationMinutes: 30,
		Category:        "timely",
	}
}

// ==================== Allocations ====================

func TestUpsertAllocationInsertsAndFillsDefaults(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	saved, err := store.UpsertAllocation(makeTestAllocation("u1", "2025-03-10", 8))
	if err != nil {
		t.Fatalf("UpsertAllocation failed: %v", err)
	}

	if saved.ID == "" {
		t.Error("expected generated ID")
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestUpsertAllocationSecondWriteWins(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	first, err := store.UpsertAllocation(makeTestAllocation("u1", "2025-03-10", 8))
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	second, err := store.UpsertAllocation(makeTestAllocation("u1", "2025-03-10", 6))
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected second write to replace the same row, got %s vs %s", second.ID, first.ID)
	}
	if second.TotalWorkHours != 6 {
		t.Errorf("expected replaced hours 6, got %v", second.TotalWorkHours)
	}

	count, err := store.CountAllocations("u1")
	if err != nil {
		t.Fatalf("CountAllocations failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected one row per user per date, got %d", count)
	}
}

func TestUpsertAllocationDifferentDatesKeepSeparateRows(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	for _, date := range []string{"2025-03-10", "2025-03-11", "2025-03-12"} {
		if _, err := store.UpsertAllocation(makeTestAllocation("u1", date, 8)); err != nil {
			t.Fatalf("upsert for %s failed: %v", date, err)
		}
	}

	count, err := store.CountAllocations("u1")
	if err != nil {
		t.Fatalf("CountAllocations failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 rows, got %d", count)
	}
}

func TestGetAllocationMissReturnsNil(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	rec, err := store.GetAllocation("u1", "2025-03-10")
	if err != nil {
		t.Fatalf("GetAllocation failed: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil for missing row, got %+v", rec)
	}
}

func TestGetAllocationRoundTripsPayload(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	if _, err := store.UpsertAllocation(makeTestAllocation("u1", "2025-03-10", 8)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	rec, err := store.GetAllocation("u1", "2025-03-10")
	if err != nil {
		t.Fatalf("GetAllocation failed: %v", err)
	}
	if rec == nil {
		t.Fatal("expected stored row")
	}

	var allocations []map[string]any
	if err := json.Unmarshal(rec.ProjectAllocations, &allocations); err != nil {
		t.Fatalf("stored payload is not valid JSON: %v", err)
	}
	if len(allocations) != 1 || allocations[0]["project_id"] != "p1" {
		t.Errorf("unexpected payload: %v", allocations)
	}
}

func TestAllocationsAreScopedByUser(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	if _, err := store.UpsertAllocation(makeTestAllocation("u1", "2025-03-10", 8)); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	rec, err := store.GetAllocation("u2", "2025-03-10")
	if err != nil {
		t.Fatalf("GetAllocation failed: %v", err)
	}
	if rec != nil {
		t.Error("one user's allocation should not be visible to another")
	}
}

// ==================== Time entries ====================

func TestInsertTimeEntryFillsIDAndTimestamp(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	entry := makeTestEntry("u1", "2025-03-10", "t1")
	if err := store.InsertTimeEntry(entry); err != nil {
		t.Fatalf("InsertTimeEntry failed: %v", err)
	}

	if entry.ID == "" {
		t.Error("expected generated ID")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestTimeEntriesAppendOnly(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	// Same task completed twice produces two independent rows
	for i := 0; i < 2; i++ {
		if err := store.InsertTimeEntry(makeTestEntry("u1", "2025-03-10", "t1")); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}

	entries, err := store.ListTimeEntries("u1", "2025-03-10")
	if err != nil {
		t.Fatalf("ListTimeEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID == entries[1].ID {
		t.Error("expected distinct IDs for repeated completions")
	}
}

func TestListTimeEntriesFiltersByDate(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	for i, date := range []string{"2025-03-10", "2025-03-10", "2025-03-11"} {
		entry := makeTestEntry("u1", date, fmt.Sprintf("t%d", i))
		if err := store.InsertTimeEntry(entry); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	scoped, err := store.ListTimeEntries("u1", "2025-03-10")
	if err != nil {
		t.Fatalf("ListTimeEntries failed: %v", err)
	}
	if len(scoped) != 2 {
		t.Errorf("expected 2 entries for the date, got %d", len(scoped))
	}

	all, err := store.ListTimeEntries("u1", "")
	if err != nil {
		t.Fatalf("ListTimeEntries failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 entries without date filter, got %d", len(all))
	}
}

func TestListTimeEntriesPreservesOptionalFields(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	entry := makeTestEntry("u1", "2025-03-10", "t1")
	entry.Notes = "finished early"
	entry.Category = "strategy"
	if err := store.InsertTimeEntry(entry); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	bare := makeTestEntry("u1", "2025-03-10", "t2")
	bare.ProjectID = ""
	bare.ProjectName = ""
	bare.Notes = ""
	if err := store.InsertTimeEntry(bare); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	entries, err := store.ListTimeEntries("u1", "2025-03-10")
	if err != nil {
		t.Fatalf("ListTimeEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	byTask := map[string]TimeEntryRecord{}
	for _, e := range entries {
		byTask[e.TaskID] = e
	}
	if byTask["t1"].Notes != "finished early" || byTask["t1"].Category != "strategy" {
		t.Errorf("optional fields lost: %+v", byTask["t1"])
	}
	if byTask["t2"].ProjectID != "" || byTask["t2"].Notes != "" {
		t.Errorf("empty optional fields should stay empty: %+v", byTask["t2"])
	}
}

func TestCountTimeEntries(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	if err := store.InsertTimeEntry(makeTestEntry("u1", "2025-03-10", "t1")); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := store.InsertTimeEntry(makeTestEntry("u2", "2025-03-10", "t2")); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	count, err := store.CountTimeEntries("u1")
	if err != nil {
		t.Fatalf("CountTimeEntries failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 entry for u1, got %d", count)
	}
}

func TestStoreCreatesParentDirectory(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "dayplan-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")
	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore should create parent directories: %v", err)
	}
	store.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("expected database file at %s: %v", dbPath, err)
	}
}
