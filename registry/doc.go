/*
Package registry manages raffle campaign metadata and lifecycle.

Raffles carry one of three states: activo, inactivo, finalizado.
Transitions between them are unrestricted; the state gates ticket
operations elsewhere (only active raffles sell tickets).

Updates are sparse: callers send only the fields they want to change and
the merged result is re-validated in full, so a partial edit can never
leave the sale window out of order (start < end < draw).
*/
package registry
