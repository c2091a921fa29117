package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestDumpCapturesPgconnFields(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_users_login_lower",
		TableName:      "users",
		Message:        "duplicate key value violates unique constraint",
	}
	err := Wrap(CodeValidation, fmt.Errorf("insert user: %w", pgErr), "login already taken")

	dump := Dump(err)
	if dump.Code != CodeValidation {
		t.Fatalf("expected validation code, got %s", dump.Code)
	}
	if dump.PGCode != "23505" || dump.PGConstraint != "idx_users_login_lower" || dump.PGTable != "users" {
		t.Fatalf("unexpected pg fields %+v", dump)
	}
	if len(dump.Chain) != 3 {
		t.Fatalf("expected three links in chain, got %d: %v", len(dump.Chain), dump.Chain)
	}
}

func TestDumpCapturesPqFields(t *testing.T) {
	err := fmt.Errorf("delete film: %w", &pq.Error{Code: "23503", Table: "likes", Message: "fk violation"})

	dump := Dump(err)
	if dump.PGCode != "23503" || dump.PGTable != "likes" {
		t.Fatalf("unexpected pq fields %+v", dump)
	}
	if dump.Code != "" {
		t.Fatalf("untyped error should not carry a code, got %s", dump.Code)
	}
}

func TestDumpNil(t *testing.T) {
	if got := Dump(nil); got.TopMessage != "" || len(got.Chain) != 0 {
		t.Fatalf("expected empty dump, got %+v", got)
	}
	if got := Dump(stdErrors.New("plain")); got.TopMessage != "plain" {
		t.Fatalf("unexpected top message %q", got.TopMessage)
	}
}

func TestDumpFieldsSkipsEmptyPgValues(t *testing.T) {
	fields := Dump(New(CodeNotFound, "film not found")).Fields()
	if fields["error_code"] != CodeNotFound {
		t.Fatalf("expected error_code, got %v", fields["error_code"])
	}
	if _, ok := fields["pg_code"]; ok {
		t.Fatalf("pg_code should be omitted when empty")
	}
}
