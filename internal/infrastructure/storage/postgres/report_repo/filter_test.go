package report_repo

import (
	"testing"
	"time"

	"github.com/Masterminds/squirrel"

	"sklad/internal/core/id"
	"sklad/internal/domain/reports"
)

func newTestRepo() *ReportRepo {
	return &ReportRepo{builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
}

func (r *ReportRepo) headerSelect() squirrel.SelectBuilder {
	return r.builder.Select("r.id", "r.number", "r.date").From("receipts r")
}

func TestJournalConditions(t *testing.T) {
	repo := newTestRepo()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		filter       reports.ReceiptJournalFilter
		wantSQL      string
		wantArgCount int
	}{
		{
			name:         "no filters",
			filter:       reports.ReceiptJournalFilter{},
			wantSQL:      "SELECT r.id, r.number, r.date FROM receipts r",
			wantArgCount: 0,
		},
		{
			name:         "from date",
			filter:       reports.ReceiptJournalFilter{From: &from},
			wantSQL:      "SELECT r.id, r.number, r.date FROM receipts r WHERE r.date >= $1",
			wantArgCount: 1,
		},
		{
			name:         "to date",
			filter:       reports.ReceiptJournalFilter{To: &to},
			wantSQL:      "SELECT r.id, r.number, r.date FROM receipts r WHERE r.date < $1",
			wantArgCount: 1,
		},
		{
			name:         "date range",
			filter:       reports.ReceiptJournalFilter{From: &from, To: &to},
			wantSQL:      "SELECT r.id, r.number, r.date FROM receipts r WHERE r.date >= $1 AND r.date < $2",
			wantArgCount: 2,
		},
		{
			name:         "numbers",
			filter:       reports.ReceiptJournalFilter{Numbers: []string{"R-001", "R-002"}},
			wantSQL:      "SELECT r.id, r.number, r.date FROM receipts r WHERE upper(trim(r.number)) IN ($1,$2)",
			wantArgCount: 2,
		},
		{
			name:         "resource filter",
			filter:       reports.ReceiptJournalFilter{ResourceIDs: []id.ID{id.New()}},
			wantSQL:      "SELECT r.id, r.number, r.date FROM receipts r WHERE EXISTS (SELECT 1 FROM receipt_lines l WHERE l.receipt_id = r.id AND l.resource_id = ANY($1))",
			wantArgCount: 1,
		},
		{
			name:         "unit filter",
			filter:       reports.ReceiptJournalFilter{UnitIDs: []id.ID{id.New()}},
			wantSQL:      "SELECT r.id, r.number, r.date FROM receipts r WHERE EXISTS (SELECT 1 FROM receipt_lines l WHERE l.receipt_id = r.id AND l.unit_id = ANY($1))",
			wantArgCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := repo.journalConditions(repo.headerSelect(), tt.filter)

			sql, args, err := q.ToSql()
			if err != nil {
				t.Fatalf("ToSql failed: %v", err)
			}

			if sql != tt.wantSQL {
				t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", tt.wantSQL, sql)
			}
			if len(args) != tt.wantArgCount {
				t.Errorf("Args count mismatch\nwant: %d\ngot:  %d", tt.wantArgCount, len(args))
			}
		})
	}
}

func TestJournalConditions_ToDateIsInclusiveByDay(t *testing.T) {
	repo := newTestRepo()

	// A To value with a time component still covers the whole day.
	to := time.Date(2026, 3, 31, 15, 45, 0, 0, time.UTC)
	q := repo.journalConditions(repo.headerSelect(), reports.ReceiptJournalFilter{To: &to})

	_, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}
	if len(args) != 1 {
		t.Fatalf("Args count mismatch\nwant: 1\ngot:  %d", len(args))
	}

	want := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	got, ok := args[0].(time.Time)
	if !ok {
		t.Fatalf("arg is not time.Time: %T", args[0])
	}
	if !got.Equal(want) {
		t.Errorf("boundary mismatch\nwant: %s\ngot:  %s", want, got)
	}
}
