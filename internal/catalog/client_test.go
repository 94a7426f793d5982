package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/menucraft/menucraft/internal/document"
)

func TestClientSendsBypassHeader(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Bypass-Tunnel-Reminder")
		json.NewEncoder(w).Encode([]Category{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	if _, err := c.Categories(context.Background()); err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if gotHeader != "1" {
		t.Fatalf("expected bypass header %q, got %q", "1", gotHeader)
	}
}

func TestClientBulkUpdateShape(t *testing.T) {
	var method string
	var body map[string]CategoryPatch
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "updated"})
	}))
	defer srv.Close()

	hidden := true
	order := 3
	c := NewClient(srv.URL, srv.Client())
	err := c.UpdateCategories(context.Background(), map[string]CategoryPatch{
		"cat_01h2xcejqtf2nbrexx3vqjhp41": {Order: &order, Hidden: &hidden},
	})
	if err != nil {
		t.Fatalf("UpdateCategories: %v", err)
	}
	if method != http.MethodPut {
		t.Fatalf("expected PUT, got %s", method)
	}
	patch, ok := body["cat_01h2xcejqtf2nbrexx3vqjhp41"]
	if !ok {
		t.Fatalf("expected id-keyed payload, got %v", body)
	}
	if patch.Order == nil || *patch.Order != 3 || patch.Hidden == nil || !*patch.Hidden {
		t.Fatalf("patch did not survive the wire: %+v", patch)
	}
	if patch.Names != nil {
		t.Fatal("unset fields must stay nil so they are not applied")
	}
}

func TestClientBulkDeleteShape(t *testing.T) {
	var method string
	var ids []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		json.NewDecoder(r.Body).Decode(&ids)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	if err := c.DeleteMenuItems(context.Background(), []string{"item_a", "item_b"}); err != nil {
		t.Fatalf("DeleteMenuItems: %v", err)
	}
	if method != http.MethodDelete {
		t.Fatalf("expected DELETE, got %s", method)
	}
	if len(ids) != 2 || ids[0] != "item_a" {
		t.Fatalf("expected bare id array, got %v", ids)
	}
}

func TestClientSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "not found"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	err := c.UpdateCategories(context.Background(), map[string]CategoryPatch{"cat_x": {}})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestClientRejectsWrongIDPrefix(t *testing.T) {
	c := NewClient("http://unused", nil)
	if _, err := c.MenuItems(context.Background(), "cat_01h2xcejqtf2nbrexx3vqjhp41"); err == nil {
		t.Fatal("expected prefix validation to reject a category id")
	}
}

func TestSnapshotFromSkipsHidden(t *testing.T) {
	sc := Subcategory{
		ID:    "sub_1",
		Names: map[string]string{"en": "Starters"},
	}
	items := []MenuItem{
		{ID: "item_1", Names: map[string]string{"en": "Soup"}, PriceCents: 450, Order: 2},
		{ID: "item_2", Names: map[string]string{"en": "Secret"}, Hidden: true},
		{ID: "item_3", Names: map[string]string{"en": "Salad"}, PriceCents: 700, Order: 1},
	}

	snap := SnapshotFrom(sc, items)
	if document.Localized(snap.Names) != "Starters" {
		t.Fatalf("expected subcategory names carried over, got %v", snap.Names)
	}
	if len(snap.Items) != 2 {
		t.Fatalf("expected hidden item skipped, got %d items", len(snap.Items))
	}
	for _, it := range snap.Items {
		if it.ID == "item_2" {
			t.Fatal("hidden item leaked into snapshot")
		}
	}
	if snap.Items[0].PriceCents != 450 || snap.Items[0].Order != 2 {
		t.Fatalf("item fields did not carry over: %+v", snap.Items[0])
	}
}
