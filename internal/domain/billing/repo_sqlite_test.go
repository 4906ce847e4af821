package billing

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/meditrack/meditrack/internal/platform/db"
)

func newTestStore(t *testing.T) (*sql.DB, int64) {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.Bootstrap(ctx, conn); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	res, err := conn.ExecContext(ctx, `
		INSERT INTO patients (name, age, gender, phone, disease, status)
		VALUES ('Asha Rao', 41, 'Female', '9876543210', 'Covid-19', 'New')`)
	if err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	patientID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seed patient id: %v", err)
	}
	return conn, patientID
}

func TestRepoSQLite_CreateGet(t *testing.T) {
	conn, patientID := newTestStore(t)
	repo := NewRepositorySQLite(conn)
	ctx := context.Background()

	at := time.Date(2026, 8, 20, 10, 0, 0, 0, time.Local)
	inv := &Invoice{PatientID: patientID, ConsultationFee: 300, MedicinesTotal: 120, TaxPct: 18, CreatedAt: at}
	id, err := repo.Create(ctx, inv)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected assigned identity")
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected invoice")
	}
	if got.PatientID != patientID || got.ConsultationFee != 300 || got.MedicinesTotal != 120 || got.TaxPct != 18 {
		t.Errorf("unexpected invoice: %+v", got)
	}
	if !got.CreatedAt.Equal(at) {
		t.Errorf("expected created_at %v round-tripped, got %v", at, got.CreatedAt)
	}
}

func TestRepoSQLite_GetAbsent(t *testing.T) {
	conn, _ := newTestStore(t)
	repo := NewRepositorySQLite(conn)

	got, err := repo.GetByID(context.Background(), 12345)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent row, got %+v", got)
	}
}

func TestRepoSQLite_ListNewestFirst(t *testing.T) {
	conn, patientID := newTestStore(t)
	repo := NewRepositorySQLite(conn)
	ctx := context.Background()

	at := time.Date(2026, 8, 20, 10, 0, 0, 0, time.Local)
	var ids []int64
	for _, fee := range []float64{100, 200, 300} {
		inv := &Invoice{PatientID: patientID, ConsultationFee: fee, TaxPct: 18, CreatedAt: at}
		id, err := repo.Create(ctx, inv)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		ids = append(ids, id)
	}

	items, err := repo.ListByPatient(ctx, patientID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 invoices, got %d", len(items))
	}
	for i, want := range []int64{ids[2], ids[1], ids[0]} {
		if items[i].ID != want {
			t.Errorf("position %d: got id %d, want %d", i, items[i].ID, want)
		}
	}
}

func TestRepoSQLite_ListOtherPatientEmpty(t *testing.T) {
	conn, patientID := newTestStore(t)
	repo := NewRepositorySQLite(conn)
	ctx := context.Background()

	inv := &Invoice{PatientID: patientID, ConsultationFee: 100, CreatedAt: time.Now()}
	if _, err := repo.Create(ctx, inv); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, err := repo.ListByPatient(ctx, patientID+1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected initialized empty slice, got %#v", items)
	}
}

func TestRepoSQLite_CreateRejectsMissingPatient(t *testing.T) {
	conn, patientID := newTestStore(t)
	repo := NewRepositorySQLite(conn)

	inv := &Invoice{PatientID: patientID + 99, ConsultationFee: 100, CreatedAt: time.Now()}
	if _, err := repo.Create(context.Background(), inv); err == nil {
		t.Error("expected foreign key violation for missing patient")
	}
}
