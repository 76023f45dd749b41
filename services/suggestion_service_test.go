package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Makarios44/smart-plan-eats-sub000/llm"
	"github.com/Makarios44/smart-plan-eats-sub000/models"
)

func TestSuggestFromPantryProfileStorageFailure(t *testing.T) {
	db := testDB(t)
	if err := db.Create(&models.PantryItem{UserID: 1, Name: "rice", Quantity: 500, Unit: "g"}).Error; err != nil {
		t.Fatal(err)
	}

	// the gateway must not be consulted when the profile read fails —
	// restrictions could be silently dropped from the prompt
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("gateway called despite profile storage failure")
	}))
	defer gateway.Close()

	if err := db.Migrator().DropTable(&models.Profile{}); err != nil {
		t.Fatal(err)
	}

	svc := NewSuggestionService(db, llm.NewClientWithBase(gateway.URL, "test-key", "test-model"))
	_, err := svc.SuggestFromPantry(1)
	if err == nil {
		t.Fatal("expected the storage error to surface")
	}
}

func TestSuggestSwapProfileStorageFailure(t *testing.T) {
	db := testDB(t)

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("gateway called despite profile storage failure")
	}))
	defer gateway.Close()

	if err := db.Migrator().DropTable(&models.Profile{}); err != nil {
		t.Fatal(err)
	}

	svc := NewSuggestionService(db, llm.NewClientWithBase(gateway.URL, "test-key", "test-model"))
	_, err := svc.SuggestSwap(1, "oatmeal", "")
	if err == nil {
		t.Fatal("expected the storage error to surface")
	}
}
