package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront/internal/domain"
)

type stubProductWriter struct {
	created  []domain.Product
	existing map[string]bool
	err      error
}

func (s *stubProductWriter) Create(_ context.Context, product domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.existing[product.Name] {
		return nil, domain.ErrDuplicateName
	}
	s.created = append(s.created, product)
	return &product, nil
}

func TestRunImportsRows(t *testing.T) {
	csv := "name,description,category,price_cents\n" +
		"Widget,A widget,tools,1000\n" +
		"Gadget,,gear,250\n"
	repo := &stubProductWriter{}

	res, err := NewCSVImporter(strings.NewReader(csv), repo).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Imported != 2 || res.Skipped != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if repo.created[0].Name != "Widget" || repo.created[0].PriceCents != 1000 {
		t.Fatalf("unexpected product %+v", repo.created[0])
	}
	if repo.created[1].Description != "" || repo.created[1].Category != "gear" {
		t.Fatalf("unexpected product %+v", repo.created[1])
	}
}

func TestRunSkipsDuplicates(t *testing.T) {
	csv := "name,price_cents\nWidget,1000\nGadget,250\n"
	repo := &stubProductWriter{existing: map[string]bool{"Widget": true}}

	res, err := NewCSVImporter(strings.NewReader(csv), repo).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Imported != 1 || res.Skipped != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRunSkipsBlankRows(t *testing.T) {
	csv := "name,price_cents\nWidget,1000\n,\n"
	repo := &stubProductWriter{}

	res, err := NewCSVImporter(strings.NewReader(csv), repo).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Imported != 1 {
		t.Fatalf("expected 1 import, got %+v", res)
	}
}

func TestRunRejectsInvalidPrice(t *testing.T) {
	csv := "name,price_cents\nWidget,free\n"
	repo := &stubProductWriter{}

	_, err := NewCSVImporter(strings.NewReader(csv), repo).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "invalid price") {
		t.Fatalf("expected price error, got %v", err)
	}
}

func TestRunRejectsMissingColumns(t *testing.T) {
	csv := "description,category\nfoo,bar\n"
	repo := &stubProductWriter{}

	_, err := NewCSVImporter(strings.NewReader(csv), repo).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing required column") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestRunStopsOnStoreFailure(t *testing.T) {
	csv := "name,price_cents\nWidget,1000\n"
	repo := &stubProductWriter{err: errors.New("connection reset")}

	res, err := NewCSVImporter(strings.NewReader(csv), repo).Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if res.Imported != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}
