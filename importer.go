package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet column headers, as produced by the organization's schedule
// workbook. Every cell is read as text and trimmed; the literal "nan" is a
// blank-cell sentinel carried over from older exports.
const (
	colDate         = "TANGGAL"
	colTimeRange    = "WAKTU"
	colDescription  = "KEGIATAN"
	colVenue        = "TEMPAT/RUANGAN"
	colLeader       = "PIMPINAN"
	colParticipants = "PELAKSANA/PESERTA"
	colInputDate    = "TGL INPUT"
	colInputTime    = "WKT INPUT"
	colContactName  = "PIC"
	colContactInfo  = "KONTAK PERSON"
)

// ImportResult summarizes a bulk import: how many rows were persisted, how
// many failed, and one human-readable message per failure.
type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

// leaderCache maps lower-cased leader names to ids so the import pipeline can
// match leader names case-insensitively and auto-create unseen ones.
type leaderCache struct {
	byName map[string]uint
}

func newLeaderCache() (*leaderCache, error) {
	leaders, err := ListLeaders()
	if err != nil {
		return nil, err
	}
	c := &leaderCache{byName: make(map[string]uint, len(leaders))}
	for _, l := range leaders {
		c.byName[strings.ToLower(l.Name)] = l.ID
	}
	return c, nil
}

func (c *leaderCache) resolve(name string) (uint, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := c.byName[key]; ok {
		return id, nil
	}
	leader, err := CreateLeader(name)
	if err != nil {
		return 0, err
	}
	c.byName[key] = leader.ID
	return leader.ID, nil
}

// ImportActivitiesFromExcel reads the first sheet of an .xlsx workbook and
// imports its rows as activities. Rows are independent: a failed row is
// recorded and the batch continues. Only whole-file problems (missing,
// unreadable or empty file) abort the import, reported as a single error.
func ImportActivitiesFromExcel(path string) ImportResult {
	result := ImportResult{Errors: []string{}}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, "could not open spreadsheet: "+err.Error())
		return result
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		result.Errors = append(result.Errors, "could not read spreadsheet: "+err.Error())
		return result
	}
	if len(rows) < 2 {
		result.Errors = append(result.Errors, "spreadsheet has no data rows")
		return result
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToUpper(strings.TrimSpace(name))] = i
	}

	cache, err := newLeaderCache()
	if err != nil {
		result.Errors = append(result.Errors, "could not load leaders: "+err.Error())
		return result
	}

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, row 1 is the header
		if err := importRow(row, header, cache); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", rowNum, err.Error()))
			continue
		}
		result.Imported++
	}

	return result
}

// importRow transforms one spreadsheet row into a validated activity and
// submits it to CreateActivity. A panic inside row processing is converted to
// a row error so one malformed row cannot abort the batch.
func importRow(row []string, header map[string]int, cache *leaderCache) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()

	cell := func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		v := strings.TrimSpace(row[idx])
		if strings.EqualFold(v, "nan") {
			return ""
		}
		return v
	}

	activity := Activity{
		Date:         cell(colDate),
		Description:  cell(colDescription),
		Venue:        cell(colVenue),
		Participants: cell(colParticipants),
		InputDate:    cell(colInputDate),
		InputTime:    cell(colInputTime),
		ContactName:  cell(colContactName),
		ContactInfo:  cell(colContactInfo),
	}

	leaderName := cell(colLeader)
	if leaderName == "" {
		return errors.New("PIMPINAN column is empty")
	}
	leaderID, resolveErr := cache.resolve(leaderName)
	if resolveErr != nil {
		return fmt.Errorf("could not resolve leader %q: %v", leaderName, resolveErr)
	}
	activity.LeaderID = &leaderID

	timeRange := cell(colTimeRange)
	if timeRange == "" {
		return errors.New("WAKTU column is empty")
	}
	parts := strings.Split(timeRange, "-")
	if len(parts) != 2 {
		return fmt.Errorf("invalid WAKTU %q (use \"HH:MM - HH:MM\")", timeRange)
	}
	activity.StartTime = strings.TrimSpace(parts[0])
	activity.EndTime = strings.TrimSpace(parts[1])

	if activity.Date == "" || activity.StartTime == "" || activity.EndTime == "" || activity.Description == "" {
		return errors.New("TANGGAL, WAKTU and KEGIATAN are all required")
	}

	now := time.Now()
	if activity.InputDate == "" {
		activity.InputDate = now.Format(dateLayout)
	}
	if activity.InputTime == "" {
		activity.InputTime = now.Format(timeLayout)
	}

	// Source dates are day-month-year; the store wants ISO.
	parsedDate, dateErr := time.Parse("02-01-2006", activity.Date)
	if dateErr != nil {
		return fmt.Errorf("invalid TANGGAL %q (use DD-MM-YYYY)", activity.Date)
	}
	activity.Date = parsedDate.Format(dateLayout)

	start, startErr := parseClock(activity.StartTime)
	end, endErr := parseClock(activity.EndTime)
	if startErr != nil || endErr != nil {
		return errors.New("invalid start or end time (use HH:MM)")
	}
	if start >= end {
		return fmt.Errorf("start time %s must be before end time %s",
			activity.StartTime, activity.EndTime)
	}

	return CreateActivity(&activity)
}
