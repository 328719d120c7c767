// Package importer bulk loads historical tracker exports into the leads cache
package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"caseflow/internal/adapters/tracker"
	perr "caseflow/internal/platform/errors"
	"caseflow/internal/platform/logger"
	leadssvc "caseflow/internal/services/leads/service"
)

// Summary reports the outcome of one import batch
type Summary struct {
	BatchID  string `json:"batch_id"`
	Total    int    `json:"total"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
}

// Options tunes an import run
type Options struct {
	// DryRun parses and transforms rows without writing to the database
	DryRun bool

	// SheetName selects the worksheet for xlsx files, default first sheet
	SheetName string
}

// Importer replays exported rows through the same transform the webhook uses
type Importer struct {
	svc  leadssvc.Service
	opts Options
	log  logger.Logger
}

// New builds an Importer
func New(svc leadssvc.Service, opts Options) *Importer {
	return &Importer{svc: svc, opts: opts, log: *logger.Named("importer")}
}

// File imports one export file, the format follows the extension
func (im *Importer) File(ctx context.Context, path string) (Summary, error) {
	return im.FileAs(ctx, path, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// FileAs imports one export file in an explicit format, csv or xlsx
func (im *Importer) FileAs(ctx context.Context, path, format string) (Summary, error) {
	switch strings.ToLower(format) {
	case "csv":
		f, err := os.Open(path)
		if err != nil {
			return Summary{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "open import file")
		}
		defer func() { _ = f.Close() }()
		return im.CSV(ctx, f)
	case "xlsx":
		return im.XLSX(ctx, path)
	default:
		return Summary{}, perr.InvalidArgf("unsupported import format %q, want csv or xlsx", format)
	}
}

// CSV imports rows from a comma separated export with a header row
func (im *Importer) CSV(ctx context.Context, r io.Reader) (Summary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return Summary{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read csv header")
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Summary{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read csv row")
		}
		rows = append(rows, row)
	}
	return im.load(ctx, header, rows)
}

// XLSX imports rows from a spreadsheet export with a header row
func (im *Importer) XLSX(ctx context.Context, path string) (Summary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Summary{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "open xlsx")
	}
	defer func() { _ = f.Close() }()

	sheet := im.opts.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	all, err := f.GetRows(sheet)
	if err != nil {
		return Summary{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "read xlsx sheet %q", sheet)
	}
	if len(all) == 0 {
		return Summary{}, perr.InvalidArgf("xlsx sheet %q is empty", sheet)
	}
	return im.load(ctx, all[0], all[1:])
}

// load transforms and upserts each row, failures are counted not fatal
func (im *Importer) load(ctx context.Context, header []string, rows [][]string) (Summary, error) {
	cols, err := indexHeader(header)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{BatchID: uuid.NewString(), Total: len(rows)}
	log := im.log.With().Str("batch_id", sum.BatchID).Logger()

	for n, row := range rows {
		task, ok := rowTask(cols, row)
		if !ok {
			sum.Skipped++
			continue
		}

		lead := leadssvc.TransformTask(task)
		if im.opts.DryRun {
			sum.Imported++
			continue
		}

		if _, err := im.svc.Upsert(ctx, lead); err != nil {
			sum.Failed++
			log.Warn().Err(err).Int("row", n+2).Str("task_id", task.ID).Msg("import row failed")
			continue
		}
		sum.Imported++
	}

	log.Info().
		Int("total", sum.Total).
		Int("imported", sum.Imported).
		Int("skipped", sum.Skipped).
		Int("failed", sum.Failed).
		Bool("dry_run", im.opts.DryRun).
		Msg("import batch done")
	return sum, nil
}

// columns maps the recognized header names to their positions
type columns map[string]int

// indexHeader lowercases and trims header cells so exports from different
// tools line up, task_id is the only required column
func indexHeader(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["task_id"]; !ok {
		return nil, perr.InvalidArgf("import header missing task_id column")
	}
	return cols, nil
}

func (c columns) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// rowTask rebuilds a tracker task shape from one export row so imports share
// the webhook transform, rows without a task id are skipped
func rowTask(cols columns, row []string) (tracker.Task, bool) {
	id := cols.get(row, "task_id")
	if id == "" {
		return tracker.Task{}, false
	}

	task := tracker.Task{
		ID:          id,
		Name:        cols.get(row, "task_name"),
		Description: cols.get(row, "task_content"),
		Status:      tracker.TaskStatus{Status: cols.get(row, "status")},
		DateCreated: cols.get(row, "date_created"),
		DateUpdated: cols.get(row, "date_updated"),
		DueDate:     cols.get(row, "due_date"),
	}
	if p := cols.get(row, "priority"); p != "" {
		task.Priority = &tracker.TaskPriority{Priority: p}
	}
	if u := cols.get(row, "created_by"); u != "" {
		task.Creator = &tracker.TaskUser{Username: u}
	}
	if a := cols.get(row, "assignee"); a != "" {
		task.Assignees = []tracker.TaskUser{{Username: a}}
	}

	custom := map[string]string{
		"pipeline_de_viabilidad":  "Pipeline de Viabilidad",
		"fecha_consulta_original": "Fecha Consulta Original",
		"tis_open":                "TIS Open",
	}
	for col, fieldName := range custom {
		if v := cols.get(row, col); v != "" {
			raw, err := json.Marshal(v)
			if err != nil {
				continue
			}
			task.CustomFields = append(task.CustomFields, tracker.CustomField{Name: fieldName, Type: "text", Value: raw})
		}
	}
	return task, true
}
