package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForStorefrontCodes(t *testing.T) {
	if got := MetadataFor(CodeEmptyCart).HTTPStatus; got != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty cart, got %d", got)
	}
	meta := MetadataFor(CodeLinkNotConfigured)
	if meta.HTTPStatus != http.StatusUnprocessableEntity || !meta.DetailsAllowed {
		t.Fatalf("unexpected link metadata %+v", meta)
	}
	if got := MetadataFor(Code("UNKNOWN")).HTTPStatus; got != http.StatusInternalServerError {
		t.Fatalf("expected unknown codes to map to 500, got %d", got)
	}
}

func TestIsWalksWrappedChain(t *testing.T) {
	base := New(CodeEmptyCart, "cart is empty")
	wrapped := fmt.Errorf("compose: %w", base)

	if !Is(wrapped, CodeEmptyCart) {
		t.Fatal("expected wrapped error to match code")
	}
	if Is(wrapped, CodeNotFound) {
		t.Fatal("expected mismatched code to be false")
	}
	if Is(stdErrors.New("plain"), CodeEmptyCart) {
		t.Fatal("expected untyped error to be false")
	}
}

func TestDumpCapturesPgErrorFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "categories_slug_key", TableName: "categories"}
	err := Wrap(CodeConflict, pgErr, "insert category")

	dump := Dump(err)
	if dump.Code != CodeConflict {
		t.Fatalf("expected conflict code, got %s", dump.Code)
	}
	if dump.PGCode != "23505" || dump.PGConstraint != "categories_slug_key" {
		t.Fatalf("unexpected pg fields %+v", dump)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected wrapped chain entries, got %v", dump.Chain)
	}
}
