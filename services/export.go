package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vnkhanh/survey-kit/models"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ValidExportFormat reports whether f is a supported export format.
func ValidExportFormat(f string) bool {
	return f == FormatCSV || f == FormatXLSX
}

// entryTable lays entries out as rows: entry id, participant id (empty for
// guests), submission time, then one column per question key.
func entryTable(questions []models.Question, entries []models.Entry) [][]string {
	header := []string{"entry_id", "participant_id", "submitted_at"}
	col := map[uint]int{}
	for _, q := range questions {
		col[q.ID] = len(header)
		header = append(header, q.Key)
	}

	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, header)
	for _, e := range entries {
		row := make([]string, len(header))
		row[0] = strconv.FormatUint(uint64(e.ID), 10)
		if e.ParticipantID != nil {
			row[1] = strconv.FormatUint(uint64(*e.ParticipantID), 10)
		}
		row[2] = e.CreatedAt.UTC().Format(time.RFC3339)
		for _, a := range e.Answers {
			if i, ok := col[a.QuestionID]; ok {
				row[i] = a.Value
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteEntriesCSV writes entries as CSV.
func WriteEntriesCSV(w io.Writer, questions []models.Question, entries []models.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(entryTable(questions, entries)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteEntriesXLSX writes entries to an "Entries" sheet and the question
// texts, translated for locale, to a "Questions" sheet.
func WriteEntriesXLSX(w io.Writer, locale string, questions []models.Question, entries []models.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Entries"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := writeRows(f, sheet, entryTable(questions, entries)); err != nil {
		return err
	}

	const legend = "Questions"
	if _, err := f.NewSheet(legend); err != nil {
		return err
	}
	if err := writeRows(f, legend, questionTable(locale, questions)); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func questionTable(locale string, questions []models.Question) [][]string {
	rows := make([][]string, 0, len(questions)+1)
	rows = append(rows, []string{"key", "question", "type", "rules"})
	for _, q := range questions {
		rows = append(rows, []string{q.Key, q.Content.Data().Get(locale), q.Type, q.Rules})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// WriteEntries dispatches on format. locale picks the question texts where the
// format carries them.
func WriteEntries(w io.Writer, format, locale string, questions []models.Question, entries []models.Entry) error {
	switch format {
	case FormatCSV:
		return WriteEntriesCSV(w, questions, entries)
	case FormatXLSX:
		return WriteEntriesXLSX(w, locale, questions, entries)
	}
	return fmt.Errorf("unsupported export format %q", format)
}
