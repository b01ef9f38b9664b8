package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sorteos-api/models"
	"sorteos-api/testutil"
)

func TestHealthRoute(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig(), nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/health", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestAuthBoundaries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig(), nil)
	raffleID := testutil.CreateTestRaffle(t, db, models.RaffleActive, 100, 5, 50)

	// User routes reject missing tokens
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/raffles/"+raffleID+"/tickets",
		models.ReserveTicketsRequest{Numbers: []string{"1"}}, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// Organizer routes reject participant tokens
	headers := map[string]string{
		"Authorization": "Bearer " + testutil.MakeToken(t, "user-1", "participante", "Ana"),
	}
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/raffles", nil, headers))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Admin routes reject missing keys
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("DELETE", "/api/raffles/"+raffleID+"/tickets",
		models.ReleaseTicketsRequest{Numbers: []string{"1"}}, nil))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Public reads need nothing
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/raffles", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}

// Full reserve-then-pay flow through the mux, the way a client drives it.
func TestReserveAndPayFlow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig(), nil)
	raffleID := testutil.CreateTestRaffle(t, db, models.RaffleActive, 100, 5, 50)

	headers := map[string]string{
		"Authorization": "Bearer " + testutil.MakeToken(t, "user-1", "participante", "Ana"),
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/raffles/"+raffleID+"/tickets",
		models.ReserveTicketsRequest{Numbers: []string{"11", "12"}}, headers))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/raffles/"+raffleID+"/payments/online",
		models.PayOnlineRequest{Numbers: []string{"11", "12"}, TrackingKey: "TRK-1", Amount: 100},
		headers))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/raffles/"+raffleID+"/summary", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var summary models.RaffleSummary
	testutil.AssertJSON(t, w, &summary)
	if summary.Purchased != 2 || summary.Reserved != 0 {
		t.Errorf("expected 2 purchased / 0 reserved, got %d / %d", summary.Purchased, summary.Reserved)
	}
	if summary.AmountCollected != 100 {
		t.Errorf("expected 100 collected, got %v", summary.AmountCollected)
	}
}
