package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads a product catalog CSV (name, description, category,
// price_cents) and inserts products. Rows whose name already exists are
// skipped, so re-running an import is harmless.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Result reports what an import run did.
type Result struct {
	Imported int
	Skipped  int
}

// Run parses CSV rows and inserts products.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result

	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	for _, col := range []string{"name", "price_cents"} {
		if _, ok := index[col]; !ok {
			return res, fmt.Errorf("missing required column %q", col)
		}
	}

	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}
		line++

		p, err := parseRow(record, index)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		if p == nil {
			continue
		}

		if _, err := i.productRepo.Create(ctx, *p); err != nil {
			if errors.Is(err, domain.ErrDuplicateName) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("line %d: insert %q: %w", line, p.Name, err)
		}
		res.Imported++
	}

	return res, nil
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("name")
	if name == "" {
		return nil, nil // blank row
	}

	cents, err := strconv.ParseInt(field("price_cents"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price for %q: %w", name, err)
	}
	if cents < 0 {
		return nil, fmt.Errorf("negative price for %q", name)
	}

	return &domain.Product{
		Name:        name,
		Description: field("description"),
		Category:    field("category"),
		PriceCents:  cents,
	}, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}
