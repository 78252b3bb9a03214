package validation

// Pesan error validasi meja
const (
	MsgBadTableName = "Table must include a table_name at least 2 characters long."
	MsgBadCapacity  = "Table must include a capacity of at least 1 person."
)

// TablePayload adalah data mentah pembuatan meja.
// Capacity bertipe any dengan alasan yang sama seperti ReservationPayload.People.
type TablePayload struct {
	TableName string `json:"table_name"`
	Capacity  any    `json:"capacity"`
}

// CapacityCount mengembalikan kapasitas jika benar-benar angka bulat.
func (p *TablePayload) CapacityCount() (int, bool) {
	switch v := p.Capacity.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// ValidateTable memakai aturan aggregasi yang sama dengan reservasi:
// daftar pelanggaran terurut, slice kosong berarti valid.
func ValidateTable(p *TablePayload) []string {
	var violations []string
	if len(p.TableName) < 2 {
		violations = append(violations, MsgBadTableName)
	}
	if capacity, ok := p.CapacityCount(); !ok || capacity < 1 {
		violations = append(violations, MsgBadCapacity)
	}
	return violations
}
