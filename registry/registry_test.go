package registry

import (
	"testing"
	"time"

	"sorteos-api/apperr"
	"sorteos-api/models"
	"sorteos-api/testutil"
)

func validCreateRequest() models.CreateRaffleRequest {
	now := time.Now().UTC()
	return models.CreateRaffleRequest{
		Name:        "Sorteo Navideño",
		Description: "Gran sorteo de fin de año",
		Prize:       "Pantalla 55 pulgadas",
		MaxTickets:  100,
		TicketPrice: 50,
		UserLimit:   5,
		SaleStart:   now.Add(time.Hour),
		SaleEnd:     now.Add(48 * time.Hour),
		DrawDate:    now.Add(72 * time.Hour),
		ImageURL:    "https://img.example/premio.jpg",
	}
}

func TestCreateRaffle(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	raffle, err := CreateRaffle(conn, validCreateRequest())
	if err != nil {
		t.Fatalf("CreateRaffle failed: %v", err)
	}

	if raffle.ID == "" {
		t.Error("expected generated id")
	}
	if raffle.State != models.RaffleActive {
		t.Errorf("new raffle should be activo, got %q", raffle.State)
	}

	got, err := GetByID(conn, raffle.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Sorteo Navideño" {
		t.Errorf("expected name round trip, got %q", got.Name)
	}
}

func TestCreateRaffle_Validation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	tests := []struct {
		name   string
		mutate func(*models.CreateRaffleRequest)
	}{
		{"missing name", func(r *models.CreateRaffleRequest) { r.Name = "" }},
		{"zero max tickets", func(r *models.CreateRaffleRequest) { r.MaxTickets = 0 }},
		{"negative price", func(r *models.CreateRaffleRequest) { r.TicketPrice = -1 }},
		{"zero user limit", func(r *models.CreateRaffleRequest) { r.UserLimit = 0 }},
		{"start after end", func(r *models.CreateRaffleRequest) {
			r.SaleStart = r.SaleEnd.Add(time.Hour)
		}},
		{"draw before sale end", func(r *models.CreateRaffleRequest) {
			r.DrawDate = r.SaleEnd.Add(-time.Hour)
		}},
		{"missing dates", func(r *models.CreateRaffleRequest) {
			r.SaleStart = time.Time{}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			_, err := CreateRaffle(conn, req)
			if apperr.KindOf(err) != apperr.InvalidInput {
				t.Errorf("expected InvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateRaffle_DuplicateName(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	if _, err := CreateRaffle(conn, validCreateRequest()); err != nil {
		t.Fatal(err)
	}
	_, err := CreateRaffle(conn, validCreateRequest())
	if apperr.KindOf(err) != apperr.Conflict {
		t.Errorf("expected Conflict for duplicate name, got %v", err)
	}
}

func TestUpdateRaffle_SparseMerge(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	raffle, err := CreateRaffle(conn, validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}

	newPrize := "Consola de videojuegos"
	newLimit := 8
	updated, err := UpdateRaffle(conn, raffle.ID, models.UpdateRaffleRequest{
		Prize:     &newPrize,
		UserLimit: &newLimit,
	})
	if err != nil {
		t.Fatalf("UpdateRaffle failed: %v", err)
	}

	if updated.Prize != newPrize {
		t.Errorf("expected prize updated, got %q", updated.Prize)
	}
	if updated.UserLimit != 8 {
		t.Errorf("expected limit 8, got %d", updated.UserLimit)
	}
	// Untouched fields survive
	if updated.Name != raffle.Name || updated.MaxTickets != raffle.MaxTickets {
		t.Error("untouched fields changed during sparse update")
	}
}

// Moving one date must be validated against the stored values of the other
// two, not only against whatever the request carried.
func TestUpdateRaffle_RevalidatesAllDates(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	raffle, err := CreateRaffle(conn, validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}

	badDraw := raffle.SaleEnd.Add(-time.Hour)
	_, err = UpdateRaffle(conn, raffle.ID, models.UpdateRaffleRequest{
		DrawDate: &badDraw,
	})
	if apperr.KindOf(err) != apperr.InvalidInput {
		t.Errorf("expected InvalidInput moving draw before stored sale end, got %v", err)
	}

	// And the stored record is untouched
	got, err := GetByID(conn, raffle.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.DrawDate.Equal(raffle.DrawDate) {
		t.Error("failed update must not change stored dates")
	}
}

func TestUpdateRaffle_NotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	name := "Nuevo nombre"
	_, err := UpdateRaffle(conn, "no-such-id", models.UpdateRaffleRequest{Name: &name})
	if apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestSetState(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	raffle, err := CreateRaffle(conn, validCreateRequest())
	if err != nil {
		t.Fatal(err)
	}

	if err := SetState(conn, raffle.ID, models.RaffleEnded); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	got, _ := GetByID(conn, raffle.ID)
	if got.State != models.RaffleEnded {
		t.Errorf("expected finalizado, got %q", got.State)
	}

	if err := SetState(conn, raffle.ID, "cancelado"); apperr.KindOf(err) != apperr.InvalidInput {
		t.Errorf("expected InvalidInput for unknown state, got %v", err)
	}
	if err := SetState(conn, "no-such-id", models.RaffleActive); apperr.KindOf(err) != apperr.NotFound {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestListByState(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	testutil.CreateTestRaffle(t, conn, models.RaffleActive, 100, 5, 50)
	testutil.CreateTestRaffle(t, conn, models.RaffleActive, 200, 5, 20)
	testutil.CreateTestRaffle(t, conn, models.RaffleEnded, 50, 5, 10)

	active, err := ListByState(conn, models.RaffleActive)
	if err != nil {
		t.Fatalf("ListByState failed: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("expected 2 active raffles, got %d", len(active))
	}

	all, err := ListByState(conn, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 raffles, got %d", len(all))
	}

	if _, err := ListByState(conn, "bogus"); apperr.KindOf(err) != apperr.InvalidInput {
		t.Errorf("expected InvalidInput for bad filter, got %v", err)
	}
}
