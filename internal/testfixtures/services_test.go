package testfixtures

import (
	"context"
	"testing"

	"github.com/example/pm-timetracker/internal/application"
	"github.com/example/pm-timetracker/internal/persistence"
)

type memoryEntryStore struct {
	entries []persistence.TimeEntry
}

func (s *memoryEntryStore) InsertEntries(ctx context.Context, entries []persistence.TimeEntry) error {
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *memoryEntryStore) DeleteEntry(ctx context.Context, id string) error {
	for i, entry := range s.entries {
		if entry.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return persistence.ErrNotFound
}

func (s *memoryEntryStore) GetEntry(ctx context.Context, id string) (persistence.TimeEntry, error) {
	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return persistence.TimeEntry{}, persistence.ErrNotFound
}

func (s *memoryEntryStore) ListEntries(ctx context.Context, filter persistence.EntryFilter) ([]persistence.TimeEntry, error) {
	return append([]persistence.TimeEntry(nil), s.entries...), nil
}

func (s *memoryEntryStore) DailySum(ctx context.Context, managerName, date string) (float64, error) {
	var sum float64
	for _, entry := range s.entries {
		if entry.ManagerName == managerName && entry.Date == date {
			sum += entry.Duration
		}
	}
	return sum, nil
}

func (s *memoryEntryStore) DailySums(ctx context.Context, managerName, from, to string) ([]persistence.DateHours, error) {
	return nil, nil
}

func TestServiceFactoryBuildsDeterministicEntryService(t *testing.T) {
	factory := NewServiceFactory(WithIDGenerator(NewIDGenerator("entry")))
	store := &memoryEntryStore{}
	service := factory.NewEntryService(EntryServiceDeps{Entries: store})

	entries, err := service.Record(context.Background(), application.RecordEntriesParams{
		Principal: application.Principal{Username: "sbergmann", ManagerName: "Sandra Bergmann"},
		Input: application.EntryInput{
			StartDate:   ReferenceTime().Format("2006-01-02"),
			OrderNumber: "1234567",
			Duration:    6,
		},
	})
	if err != nil {
		t.Fatalf("failed to record entry: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].ID != "entry-1" {
		t.Fatalf("expected deterministic id entry-1, got %q", entries[0].ID)
	}
	if !entries[0].CreatedAt.Equal(ReferenceTime()) {
		t.Fatalf("expected creation time from fixture clock, got %v", entries[0].CreatedAt)
	}
}

func TestServiceFactoryDefaults(t *testing.T) {
	factory := NewServiceFactory()
	if factory.Clock == nil || factory.IDGenerator == nil {
		t.Fatal("expected factory defaults to be populated")
	}
	if !factory.Clock.Now().Equal(ReferenceTime()) {
		t.Fatalf("expected factory clock at ReferenceTime, got %v", factory.Clock.Now())
	}
}

func TestSQLiteHarnessRoundTrip(t *testing.T) {
	harness := NewSQLiteHarness(t)

	entry := NewEntryFixture(WithEntryManager("Jonas Petersen"), WithEntryDuration(4))
	if err := harness.Entries.InsertEntry(context.Background(), entry); err != nil {
		t.Fatalf("failed to insert fixture entry: %v", err)
	}

	stored, err := harness.Entries.GetEntry(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("failed to load fixture entry: %v", err)
	}
	if stored.ManagerName != "Jonas Petersen" || stored.Duration != 4 {
		t.Fatalf("unexpected stored entry: %+v", stored)
	}
}
