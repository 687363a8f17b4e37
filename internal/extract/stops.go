package extract

// Stop is one pickup or delivery event assembled from a block. Date and
// windows are normalized strings; windows are only ever set when a date line
// was parsed for the same block.
type Stop struct {
	Type        StopType
	Name        string
	Address     string
	PostalCode  string
	City        string
	Country     string
	Date        string
	WindowStart string
	WindowEnd   string
	Notes       string
	Pallets     int
	Weight      float64
	HasWeight   bool
}

// AssembleStop merges the block-level extraction results into a Stop. The
// date/window invariant is enforced here: without a date the windows are
// dropped.
func AssembleStop(typ StopType, name string, addr Address, date, windowStart, windowEnd, notes string) Stop {
	if date == "" {
		windowStart, windowEnd = "", ""
	}
	return Stop{
		Type:        typ,
		Name:        name,
		Address:     addr.Full,
		PostalCode:  addr.Postal,
		City:        addr.City,
		Country:     addr.Country,
		Date:        date,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Notes:       notes,
	}
}
