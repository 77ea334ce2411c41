package inventory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/garageml/partsbot/internal/domain"
)

func TestRemote_QueryParameterMapping(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"REP-001","name":"Kit de Distribución"}]`))
	}))
	defer srv.Close()

	engine := NewRemote(srv.URL)
	got, err := engine.Search(context.Background(), domain.Criteria{
		PartName: "bomba de agua",
		Make:     "Ford",
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotQuery.Get("part") != "bomba de agua" {
		t.Errorf("part = %q, want %q", gotQuery.Get("part"), "bomba de agua")
	}
	if gotQuery.Get("make") != "Ford" {
		t.Errorf("make = %q, want Ford", gotQuery.Get("make"))
	}
	if gotQuery.Has("model") {
		t.Error("model parameter sent, want omitted for absent criteria")
	}

	if len(got) != 1 || got[0].ID != "REP-001" {
		t.Errorf("Search() = %+v, want the one decoded product", got)
	}
}

func TestRemote_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	engine := NewRemote(srv.URL)
	_, err := engine.Search(context.Background(), domain.Criteria{PartName: "bujia"})
	if err == nil {
		t.Fatal("Search() error = nil, want typed error on 502")
	}

	var invErr *domain.InventoryError
	if !errors.As(err, &invErr) {
		t.Fatalf("error type = %T, want *domain.InventoryError", err)
	}
	if invErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", invErr.StatusCode)
	}
}

func TestRemote_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	engine := NewRemote(srv.URL)
	_, err := engine.Search(context.Background(), domain.Criteria{PartName: "bujia"})

	var invErr *domain.InventoryError
	if !errors.As(err, &invErr) {
		t.Fatalf("error = %v, want *domain.InventoryError on malformed body", err)
	}
}

func TestRemote_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	engine := NewRemote(srv.URL)
	_, err := engine.Search(context.Background(), domain.Criteria{})

	var invErr *domain.InventoryError
	if !errors.As(err, &invErr) {
		t.Fatalf("error = %v, want *domain.InventoryError on transport failure", err)
	}
	if invErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", invErr.StatusCode)
	}
}
