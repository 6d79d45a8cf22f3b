package db

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

type timeArg time.Time

func (a timeArg) Match(v driver.Value) bool {
	tm, ok := v.(time.Time)
	return ok && tm.Equal(time.Time(a))
}

func TestSeedSamples_EmptyTableEndsAtNow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	now := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)
	last := len(SeedBlanketAvgC) - 1

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM temperature_samples")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectBegin()
	for i := range SeedBlanketAvgC {
		want := now.Add(-time.Duration(last-i) * 5 * time.Minute)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO temperature_samples")).
			WithArgs(timeArg(want), SeedBlanketAvgC[i], SeedBodyC[i]).
			WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
	}
	mock.ExpectCommit()

	if err := SeedSamples(db, now); err != nil {
		t.Fatalf("SeedSamples() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedSamples_NonEmptyTableUntouched(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM temperature_samples")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))

	if err := SeedSamples(db, time.Now()); err != nil {
		t.Fatalf("SeedSamples() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSeedSamples_InsertErrorRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	defer db.Close()

	boom := errors.New("disk full")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM temperature_samples")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO temperature_samples")).WillReturnError(boom)
	mock.ExpectRollback()

	err = SeedSamples(db, time.Now())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
