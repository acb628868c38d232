package file

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/guilherme-santos/csvcalendar"
)

const DefaultSeparator = ';'

// Row is one record keyed by the header names.
type Row map[string]string

// CSVReader reads the event file. The first record is the header.
type CSVReader struct {
	Separator rune
	observer  csvcalendar.Observer
}

func NewCSVReader(observer csvcalendar.Observer) *CSVReader {
	return &CSVReader{
		Separator: DefaultSeparator,
		observer:  csvcalendar.ObserverOrNop(observer),
	}
}

func (r *CSVReader) ParseFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &csvcalendar.FileProcessingError{Path: path, Err: err}
	}
	defer f.Close()

	rows, err := r.Parse(f)
	if err != nil {
		return nil, &csvcalendar.FileProcessingError{Path: path, Err: err}
	}
	r.observer.RowsRead(path, len(rows))
	return rows, nil
}

func (r *CSVReader) Parse(in io.Reader) ([]Row, error) {
	cr := csv.NewReader(in)
	cr.Comma = r.Separator
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, err
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}

	rows := []Row{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *CSVReader) ParseRowToEvent(row Row) *csvcalendar.Event {
	return csvcalendar.NewEvent(
		row[csvcalendar.FieldTime],
		row[csvcalendar.FieldDuration],
		row[csvcalendar.FieldName],
		row[csvcalendar.FieldNotification],
	)
}

func (r *CSVReader) ParseFileToEvents(path string) ([]*csvcalendar.Event, error) {
	rows, err := r.ParseFile(path)
	if err != nil {
		return nil, err
	}
	events := make([]*csvcalendar.Event, len(rows))
	for i, row := range rows {
		events[i] = r.ParseRowToEvent(row)
	}
	return events, nil
}
