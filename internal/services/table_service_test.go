package services

import (
	"errors"
	"testing"
	"time"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

type fakeTableRepo struct {
	repositories.TableRepository

	getByID func(id int64) (*models.Table, error)
	update  func(table *models.Table) error
}

func (f *fakeTableRepo) GetByID(_ repositories.SQLExecutor, id int64) (*models.Table, error) {
	return f.getByID(id)
}

func (f *fakeTableRepo) Update(_ repositories.SQLExecutor, table *models.Table) error {
	return f.update(table)
}

func TestUpdateTableStatus(t *testing.T) {
	occupiedAt := time.Now().Add(-30 * time.Minute)

	tests := []struct {
		name    string
		current models.Table
		req     UpdateTableStatusRequest
		check   func(t *testing.T, got *models.Table)
	}{
		{
			name:    "occupying sets customer and occupation time",
			current: models.Table{ID: 1, Number: 4, Status: string(models.TableStatusFree)},
			req: UpdateTableStatusRequest{
				Status:          string(models.TableStatusOccupied),
				CurrentCustomer: strPtr("Ayan"),
				CustomerPhone:   strPtr("+700100200"),
				Waiter:          strPtr("Dana"),
			},
			check: func(t *testing.T, got *models.Table) {
				if got.Status != string(models.TableStatusOccupied) {
					t.Errorf("status = %s", got.Status)
				}
				if got.CurrentCustomer == nil || *got.CurrentCustomer != "Ayan" {
					t.Errorf("customer = %v", got.CurrentCustomer)
				}
				if got.OccupiedSince == nil {
					t.Error("occupied_since not set")
				}
			},
		},
		{
			name: "re-occupying keeps the original occupation time",
			current: models.Table{
				ID: 1, Number: 4,
				Status:        string(models.TableStatusOccupied),
				OccupiedSince: &occupiedAt,
			},
			req: UpdateTableStatusRequest{
				Status:          string(models.TableStatusOccupied),
				CurrentCustomer: strPtr("Ayan"),
			},
			check: func(t *testing.T, got *models.Table) {
				if got.OccupiedSince == nil || !got.OccupiedSince.Equal(occupiedAt) {
					t.Errorf("occupied_since = %v, want %v", got.OccupiedSince, occupiedAt)
				}
			},
		},
		{
			name:    "reserving records the party without an occupation time",
			current: models.Table{ID: 2, Number: 6, Status: string(models.TableStatusFree)},
			req: UpdateTableStatusRequest{
				Status:          string(models.TableStatusReserved),
				CurrentCustomer: strPtr("Madina"),
			},
			check: func(t *testing.T, got *models.Table) {
				if got.Status != string(models.TableStatusReserved) {
					t.Errorf("status = %s", got.Status)
				}
				if got.OccupiedSince != nil {
					t.Error("reserved table should not carry occupied_since")
				}
			},
		},
		{
			name: "freeing clears all customer data",
			current: models.Table{
				ID: 3, Number: 2,
				Status:          string(models.TableStatusOccupied),
				CurrentCustomer: strPtr("Ayan"),
				CustomerPhone:   strPtr("+700100200"),
				Waiter:          strPtr("Dana"),
				OccupiedSince:   &occupiedAt,
			},
			req: UpdateTableStatusRequest{Status: string(models.TableStatusFree)},
			check: func(t *testing.T, got *models.Table) {
				if got.CurrentCustomer != nil || got.CustomerPhone != nil || got.Waiter != nil || got.OccupiedSince != nil {
					t.Errorf("freed table still carries customer data: %+v", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTableRepo{
				getByID: func(id int64) (*models.Table, error) {
					table := tt.current
					return &table, nil
				},
				update: func(table *models.Table) error { return nil },
			}
			svc := &tableService{tableRepo: repo}

			got, err := svc.UpdateTableStatus(nil, tt.current.ID, tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestUpdateTableStatusInvalid(t *testing.T) {
	svc := &tableService{}
	if _, err := svc.UpdateTableStatus(nil, 1, UpdateTableStatusRequest{Status: "broken"}); !errors.Is(err, ErrInvalidTableStatus) {
		t.Fatalf("got %v, want ErrInvalidTableStatus", err)
	}
}

func TestUpdateTableStatusNotFound(t *testing.T) {
	svc := &tableService{tableRepo: &fakeTableRepo{
		getByID: func(id int64) (*models.Table, error) {
			return nil, repositories.ErrNotFound
		},
	}}
	req := UpdateTableStatusRequest{Status: string(models.TableStatusFree)}
	if _, err := svc.UpdateTableStatus(nil, 404, req); !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("got %v, want ErrTableNotFound", err)
	}
}

func TestGetTablesInvalidStatusFilter(t *testing.T) {
	svc := &tableService{}
	bad := "squatted"
	if _, err := svc.GetTables(nil, &bad); !errors.Is(err, ErrInvalidTableStatus) {
		t.Fatalf("got %v, want ErrInvalidTableStatus", err)
	}
}
