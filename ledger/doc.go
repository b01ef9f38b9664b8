/*
Package ledger owns ticket rows and the payments reconciled against them.
This is the correctness-critical core of the service.

# Ticket lifecycle

	(free) ──reserve──▶ APARTADO ──payOnline──▶ COMPRADO
	            ▲            │
	            └──release───┘ (row deleted)

A ticket row only exists while a number is claimed. Releasing deletes the
row, so the composite UNIQUE (raffle_id, numero_boleto) in the schema is
exactly the "never double-sold" invariant and concurrent reservations for
the same number resolve on it.

# Reservation contract

Reserve is partial-success by design: free numbers are claimed, taken
numbers come back in a rejected list alongside them. Two failures reject
the whole batch instead: crossing the raffle's per-user limit, and every
requested number already being taken.

Two locking details keep Reserve safe under concurrency. Same-user
transactions serialize on the usuario upsert's row lock, which is what
makes the per-user limit count reliable under READ COMMITTED. And ticket
inserts always run in sorted number order, so overlapping batches take
row locks in the same sequence and cannot deadlock.

# Payments

PayOnline and RegisterTransfer share a protocol inside one transaction:
verify the tickets are reserved by the caller, insert the payment row,
update the tickets with a rowcount guard, read the result back. They
differ in what the update does. An online payment is asserted complete by
a trusted caller, so tickets flip to COMPRADO and the payment is born
COMPLETADO. A transfer needs out-of-band confirmation, so tickets keep
estado APARTADO and only gain the payment reference (PENDIENTE).

Two distinct "still outstanding" views exist on purpose: see
OutstandingForUser and ReservedAwaitingConfirmation.
*/
package ledger
