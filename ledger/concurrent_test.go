package ledger

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"sorteos-api/apperr"
	"sorteos-api/models"
	"sorteos-api/testutil"
)

// TestConcurrentReserveSameNumber verifies that when many goroutines race
// for one ticket number, exactly one wins and the rest see it rejected.
func TestConcurrentReserveSameNumber(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	raffleID := testutil.CreateTestRaffle(t, conn, models.RaffleActive, 100, 10, 50)

	numRacers := 10
	var winners atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRacers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			userID := fmt.Sprintf("user-%d", idx)
			reserved, _, err := Reserve(conn, raffleID, userID, "Racer", []string{"77"})
			if err == nil && len(reserved) == 1 {
				winners.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if winners.Load() != 1 {
		t.Errorf("expected exactly 1 winner, got %d", winners.Load())
	}

	// Exactly one live row for the number
	var count int
	err := conn.QueryRow(`
		SELECT COUNT(*) FROM ticket WHERE raffle_id = $1 AND numero_boleto = '77'`,
		raffleID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count tickets: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 ticket row for number 77, got %d", count)
	}
}

// TestConcurrentReserveDistinctNumbers verifies independent numbers don't
// contend with each other.
func TestConcurrentReserveDistinctNumbers(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	raffleID := testutil.CreateTestRaffle(t, conn, models.RaffleActive, 100, 10, 50)

	numUsers := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numUsers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			userID := fmt.Sprintf("user-%d", idx)
			number := fmt.Sprintf("%d", idx+1)
			reserved, _, err := Reserve(conn, raffleID, userID, "Parallel", []string{number})
			if err == nil && len(reserved) == 1 {
				successCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if int(successCount.Load()) != numUsers {
		t.Errorf("expected %d successful reservations, got %d", numUsers, successCount.Load())
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ticket WHERE raffle_id = $1`, raffleID).Scan(&count); err != nil {
		t.Fatalf("Failed to count tickets: %v", err)
	}
	if count != numUsers {
		t.Errorf("expected %d ticket rows, got %d", numUsers, count)
	}
}

// TestConcurrentReserveSameUserLimit verifies the per-user cap holds when one
// user races against their own limit: transactions for the same user
// serialize on the usuario row lock, so the later one counts the earlier
// one's committed tickets and fails instead of jointly exceeding the cap.
func TestConcurrentReserveSameUserLimit(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	raffleID := testutil.CreateTestRaffle(t, conn, models.RaffleActive, 100, 3, 50)

	// Three batches of two tickets each; only one fits the limit of 3.
	batches := [][]string{{"1", "2"}, {"3", "4"}, {"5", "6"}}

	var successes atomic.Int32
	var wg sync.WaitGroup

	for _, batch := range batches {
		wg.Add(1)
		go func(numbers []string) {
			defer wg.Done()

			reserved, _, err := Reserve(conn, raffleID, "user-1", "Ana", numbers)
			if err == nil && len(reserved) == 2 {
				successes.Add(1)
			}
		}(batch)
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Errorf("expected exactly 1 batch to win, got %d", successes.Load())
	}

	var count int
	err := conn.QueryRow(`
		SELECT COUNT(*) FROM ticket WHERE raffle_id = $1 AND user_id = 'user-1'`,
		raffleID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count tickets: %v", err)
	}
	if count > 3 {
		t.Errorf("per-user limit of 3 exceeded: user holds %d tickets", count)
	}
	if count != 2 {
		t.Errorf("expected the winning batch's 2 tickets, got %d", count)
	}
}

// TestConcurrentReserveReversedBatches races two overlapping batches given
// in opposite orders. Inserts run in sorted order, so the transactions lock
// ticket rows in the same sequence; the loser must see a clean conflict,
// never a deadlock surfacing as an internal error.
func TestConcurrentReserveReversedBatches(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	raffleID := testutil.CreateTestRaffle(t, conn, models.RaffleActive, 100, 10, 50)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	batches := [][]string{{"21", "22", "23"}, {"23", "22", "21"}}

	for i, batch := range batches {
		wg.Add(1)
		go func(idx int, numbers []string) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", idx)
			_, _, errs[idx] = Reserve(conn, raffleID, userID, "Racer", numbers)
		}(i, batch)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil && apperr.KindOf(err) != apperr.Conflict {
			t.Errorf("racer %d: expected success or Conflict, got %v", i, err)
		}
	}

	rows, err := conn.Query(`
		SELECT numero_boleto, COUNT(*) FROM ticket WHERE raffle_id = $1
		GROUP BY numero_boleto`, raffleID)
	if err != nil {
		t.Fatalf("Failed to count tickets: %v", err)
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var number string
		var count int
		if err := rows.Scan(&number, &count); err != nil {
			t.Fatal(err)
		}
		if count != 1 {
			t.Errorf("number %s has %d rows", number, count)
		}
		total++
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Errorf("expected 3 distinct numbers claimed, got %d", total)
	}
}

// TestConcurrentPayAndRelease verifies a racing release cannot strip tickets
// out from under a payment: either the payment sees all its tickets and
// commits, or it observes the shortfall and rolls back completely.
func TestConcurrentPayAndRelease(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	raffleID := testutil.CreateTestRaffle(t, conn, models.RaffleActive, 100, 10, 50)
	testutil.ReserveTestTickets(t, conn, raffleID, "user-1", []string{"1", "2"})

	var wg sync.WaitGroup
	wg.Add(2)

	var payErr error
	go func() {
		defer wg.Done()
		_, _, payErr = PayOnline(conn, raffleID, "user-1", models.PayOnlineRequest{
			Numbers:     []string{"1", "2"},
			TrackingKey: "TRK-RACE",
			Amount:      100,
		})
	}()
	go func() {
		defer wg.Done()
		Release(conn, raffleID, []string{"2"})
	}()
	wg.Wait()

	// Whatever interleaving happened, the invariant holds: a payment row
	// exists only if both tickets are purchased and attached to it.
	var payments int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM payment`).Scan(&payments); err != nil {
		t.Fatal(err)
	}

	if payErr == nil {
		if payments != 1 {
			t.Errorf("payment succeeded but %d payment rows exist", payments)
		}
		var purchased int
		if err := conn.QueryRow(`
			SELECT COUNT(*) FROM ticket WHERE raffle_id = $1 AND estado = $2`,
			raffleID, models.TicketPurchased).Scan(&purchased); err != nil {
			t.Fatal(err)
		}
		if purchased != 2 {
			t.Errorf("payment succeeded but only %d tickets are COMPRADO", purchased)
		}
	} else if payments != 0 {
		t.Errorf("payment failed but %d payment rows exist", payments)
	}
}
