/*
Package projection computes the multi-year construction ledger.

A run is a single linear pass executed inside one store transaction:

	clear PROJECTED entries
	seed every static row
	aggregate budget totals after PRIOR_YEAR into COSTS entries
	derive the sorted year and resource universes
	for each resource, for each year:
	    INTEREST   = round(((beg+cost+proceeds)+beg)/2 * INT_RATE, hundreds), only if > 0
	    BEG_EQUITY = END_EQUITY of the previous year (0 if absent)
	    END_EQUITY = sum of every entry for the resource and year

Year order within a resource matters because each year reads the previous
year's END_EQUITY. Every insert is immediately visible to later reads.
*/
package projection
