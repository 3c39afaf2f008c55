package services

import (
	"errors"
	"testing"

	"resto_pos_backend/internal/models"
	"resto_pos_backend/internal/repositories"
)

// fakeMenuRepo keeps menu items in a map so service tests can exercise the
// full create/get/delete cycle without a database.
type fakeMenuRepo struct {
	repositories.MenuRepository

	items  map[int64]models.MenuItem
	nextID int64
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: map[int64]models.MenuItem{}}
}

func (f *fakeMenuRepo) Create(_ repositories.SQLExecutor, item *models.MenuItem) (int64, error) {
	f.nextID++
	item.ID = f.nextID
	f.items[item.ID] = *item
	return item.ID, nil
}

func (f *fakeMenuRepo) GetByID(_ repositories.SQLExecutor, id int64) (*models.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &item, nil
}

func (f *fakeMenuRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func TestMenuItemCreateGetRoundTrip(t *testing.T) {
	svc := &menuService{menuRepo: newFakeMenuRepo()}

	created, err := svc.CreateMenuItem(nil, CreateMenuItemRequest{
		Name:        "Paneer Tikka",
		Price:       12.50,
		Category:    "starters",
		Vegetarian:  true,
		SpiceLevel:  3,
		PrepMinutes: 20,
		Popular:     true,
		TaxCategory: "food",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created item has no ID")
	}
	if !created.Available {
		t.Error("availability should default to true")
	}

	got, err := svc.GetMenuItemByID(nil, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Paneer Tikka" || got.Price != 12.50 || got.Category != "starters" {
		t.Errorf("got %+v, want the created fields back", got)
	}
	if !got.Vegetarian || got.SpiceLevel != 3 || got.PrepMinutes != 20 || !got.Popular {
		t.Errorf("dietary/prep fields lost: %+v", got)
	}
	if got.TaxCategory != "food" {
		t.Errorf("tax category = %q, want food", got.TaxCategory)
	}
}

func TestCreateMenuItemDefaultsTaxCategory(t *testing.T) {
	svc := &menuService{menuRepo: newFakeMenuRepo()}
	created, err := svc.CreateMenuItem(nil, CreateMenuItemRequest{
		Name:     "House Water",
		Price:    0,
		Category: "drinks",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.TaxCategory != models.TaxCategoryAll {
		t.Errorf("tax category = %q, want %q", created.TaxCategory, models.TaxCategoryAll)
	}
}

func TestDeleteMenuItemIdempotence(t *testing.T) {
	svc := &menuService{menuRepo: newFakeMenuRepo()}

	created, err := svc.CreateMenuItem(nil, CreateMenuItemRequest{
		Name:     "Daily Soup",
		Price:    6.00,
		Category: "starters",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeleteMenuItem(nil, created.ID); err != nil {
		t.Fatalf("first delete: unexpected error: %v", err)
	}
	if err := svc.DeleteMenuItem(nil, created.ID); !errors.Is(err, ErrMenuItemNotFound) {
		t.Fatalf("second delete: got %v, want ErrMenuItemNotFound", err)
	}
	if _, err := svc.GetMenuItemByID(nil, created.ID); !errors.Is(err, ErrMenuItemNotFound) {
		t.Fatalf("get after delete: got %v, want ErrMenuItemNotFound", err)
	}
}
