package repository

import (
	"testing"
	"time"

	"github.com/ledgerdesk/backend/internal/model"
)

func TestTransactionRepositoryBatchFlow(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))

	batch := &model.ImportBatch{Filename: "statement.xlsx", Status: model.ImportStatusPending}
	if err := repo.CreateBatch(batch); err != nil {
		t.Fatalf("CreateBatch error: %v", err)
	}

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	transactions := []model.Transaction{
		{BatchID: batch.ID, Date: day, Description: "Office supplies", AmountCents: -4599, Direction: model.TransactionDebit},
		{BatchID: batch.ID, Date: day.AddDate(0, 0, 1), Description: "Client payment", AmountCents: 125000, Direction: model.TransactionCredit},
	}
	if err := repo.CreateTransactions(transactions); err != nil {
		t.Fatalf("CreateTransactions error: %v", err)
	}

	batch.Status = model.ImportStatusCompleted
	batch.RowsImported = 2
	if err := repo.SaveBatch(batch); err != nil {
		t.Fatalf("SaveBatch error: %v", err)
	}

	loaded, err := repo.GetBatch(batch.ID)
	if err != nil {
		t.Fatalf("GetBatch error: %v", err)
	}
	if loaded.Status != model.ImportStatusCompleted || loaded.RowsImported != 2 {
		t.Fatalf("batch state not persisted: %+v", loaded)
	}

	rows, err := repo.ListByBatch(batch.ID)
	if err != nil {
		t.Fatalf("ListByBatch error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(rows))
	}

	recent, err := repo.List(10)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(recent) != 2 || recent[0].Description != "Client payment" {
		t.Fatalf("expected newest first, got %+v", recent)
	}
}

func TestTransactionRepositoryEmptyCreate(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	if err := repo.CreateTransactions(nil); err != nil {
		t.Fatalf("empty CreateTransactions should succeed, got %v", err)
	}
}
