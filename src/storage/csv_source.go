package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"sales-report/src/helpers"
	"sales-report/src/interfaces"
	"sales-report/src/logger"
	"sales-report/src/models"
)

// ctxCheckEvery is how many records are parsed between cancellation checks.
const ctxCheckEvery = 1024

// -----------------------------------------------------------------------------

// CSVSource reads comma-separated tables from local files or http(s) URLs.
type CSVSource struct {
	Fetcher interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewCSVSource(fetcher interfaces.INetworkManager, log *logger.Logger) *CSVSource {
	return &CSVSource{Fetcher: fetcher, Logger: log}
}

// -----------------------------------------------------------------------------

func (s *CSVSource) Name() string {
	return "csv"
}

// -----------------------------------------------------------------------------

func (s *CSVSource) ReadTable(ctx context.Context, ref string) (*models.MTable, error) {
	data, err := s.read(ctx, ref)
	if err != nil {
		return nil, err
	}
	return ParseCSVTable(ctx, ref, data)
}

// -----------------------------------------------------------------------------

func (s *CSVSource) Close() error {
	return nil
}

// -----------------------------------------------------------------------------

func (s *CSVSource) read(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if s.Fetcher == nil {
			return nil, helpers.NewNetworkError(fmt.Sprintf("no fetcher configured for %s", ref), nil)
		}
		return s.Fetcher.Get(ctx, ref)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	s.Logger.Debug("Read %d bytes from %s", len(data), ref)
	return data, nil
}

// -----------------------------------------------------------------------------

// ParseCSVTable splits CSV bytes into a header and rows. Records with a
// different field count than the header are kept as-is; the record store
// drops them as malformed. A UTF-8 BOM before the header is ignored.
func ParseCSVTable(ctx context.Context, name string, data []byte) (*models.MTable, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty table", name)
		}
		return nil, fmt.Errorf("%s: failed to read CSV header: %w", name, err)
	}

	table := &models.MTable{Name: name, Header: header}
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Keep a placeholder so the record store counts the row as dropped.
			table.Rows = append(table.Rows, nil)
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
