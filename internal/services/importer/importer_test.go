package importer

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"caseflow/internal/services/leads/domain"
)

// fakeService records upserts and satisfies the leads service contract
type fakeService struct {
	upserts []domain.Lead
	fail    map[string]bool
}

func (f *fakeService) Upsert(_ context.Context, lead domain.Lead) (domain.Lead, error) {
	if f.fail[lead.TaskID] {
		return domain.Lead{}, context.DeadlineExceeded
	}
	f.upserts = append(f.upserts, lead)
	return lead, nil
}

func (f *fakeService) GetByTaskID(context.Context, string) (domain.Lead, error) {
	return domain.Lead{}, nil
}

func (f *fakeService) GetByCaseID(context.Context, string) (domain.Lead, error) {
	return domain.Lead{}, nil
}

func (f *fakeService) Search(context.Context, domain.SearchInput) ([]domain.SearchHit, error) {
	return nil, nil
}

func (f *fakeService) RecentUpdates(context.Context, time.Time, int) ([]domain.Lead, error) {
	return nil, nil
}

const csvExport = `task_id,task_name,status,task_content,pipeline_de_viabilidad
t1,Juan Perez | 12345678,intake,"Name: Juan Perez
Phone: 555-123-4567",viable
t2,Maria López,screening,,
,missing id row,x,,
`

func TestCSVImport(t *testing.T) {
	fake := &fakeService{}
	im := New(fake, Options{})

	sum, err := im.CSV(context.Background(), strings.NewReader(csvExport))
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}

	if sum.BatchID == "" {
		t.Fatal("expected a batch id")
	}
	if sum.Total != 3 || sum.Imported != 2 || sum.Skipped != 1 || sum.Failed != 0 {
		t.Fatalf("summary = %+v", sum)
	}
	if len(fake.upserts) != 2 {
		t.Fatalf("upserts = %d", len(fake.upserts))
	}

	first := fake.upserts[0]
	if first.TaskID != "t1" {
		t.Fatalf("TaskID = %q", first.TaskID)
	}
	if first.MyCaseID == nil || *first.MyCaseID != "12345678" {
		t.Fatalf("MyCaseID = %v, want id from title", first.MyCaseID)
	}
	if first.PhoneNumber == nil || *first.PhoneNumber != "5551234567" {
		t.Fatalf("PhoneNumber = %v, want digits from narrative", first.PhoneNumber)
	}
	if first.PipelineViability == nil || *first.PipelineViability != "viable" {
		t.Fatalf("PipelineViability = %v", first.PipelineViability)
	}

	second := fake.upserts[1]
	if second.SearchKey == nil || *second.SearchKey != "MARIA LOPEZ" {
		t.Fatalf("SearchKey = %v, want folded name", second.SearchKey)
	}
}

func TestCSVImportDryRun(t *testing.T) {
	fake := &fakeService{}
	im := New(fake, Options{DryRun: true})

	sum, err := im.CSV(context.Background(), strings.NewReader(csvExport))
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if sum.Imported != 2 {
		t.Fatalf("Imported = %d", sum.Imported)
	}
	if len(fake.upserts) != 0 {
		t.Fatalf("dry run wrote %d rows", len(fake.upserts))
	}
}

func TestCSVImportCountsFailures(t *testing.T) {
	fake := &fakeService{fail: map[string]bool{"t2": true}}
	im := New(fake, Options{})

	sum, err := im.CSV(context.Background(), strings.NewReader(csvExport))
	if err != nil {
		t.Fatalf("CSV: %v", err)
	}
	if sum.Imported != 1 || sum.Failed != 1 {
		t.Fatalf("summary = %+v", sum)
	}
}

func TestCSVImportRejectsMissingTaskID(t *testing.T) {
	im := New(&fakeService{}, Options{})
	_, err := im.CSV(context.Background(), strings.NewReader("name,status\nJuan,intake\n"))
	if err == nil {
		t.Fatal("expected header error without task_id")
	}
}

func TestXLSXImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"task_id", "task_name", "task_content"},
		{"x1", "Ana García | 87654321", "Email: ana@example.com"},
		{"x2", "Pedro", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}
	_ = f.Close()

	fake := &fakeService{}
	im := New(fake, Options{})

	sum, err := im.File(context.Background(), path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if sum.Total != 2 || sum.Imported != 2 {
		t.Fatalf("summary = %+v", sum)
	}
	if got := fake.upserts[0].EmailExtracted; got == nil || *got != "ana@example.com" {
		t.Fatalf("EmailExtracted = %v", got)
	}
	if got := fake.upserts[0].MyCaseID; got == nil || *got != "87654321" {
		t.Fatalf("MyCaseID = %v", got)
	}
}

func TestFileRejectsUnknownExtension(t *testing.T) {
	im := New(&fakeService{}, Options{})
	if _, err := im.File(context.Background(), "export.pdf"); err == nil {
		t.Fatal("expected format error")
	}
}
