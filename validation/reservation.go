package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Jam operasional restoran (menit sejak tengah malam)
const (
	OpeningMinutes = 10*60 + 30 // 10:30
	ClosingMinutes = 21*60 + 30 // 21:30
)

// Pesan error validasi reservasi
const (
	MsgMissingData       = "req body must have data property."
	MsgMissingFirstName  = "Reservation must include a first_name."
	MsgMissingLastName   = "Reservation must include a last_name."
	MsgBadMobileNumber   = "Reservation must include a mobile_number in this format: XXX-XXX-XXXX."
	MsgBadDateFormat     = "Reservation must include a reservation_date in this format: YYYY-MM-DD."
	MsgDateInPast        = "Reservation cannot be made in the past. Only future reservations are allowed."
	MsgDateOnTuesday     = "Reservations cannot be made on a Tuesday, when the restaurant is closed."
	MsgBadTimeFormat     = "Reservation must include a reservation_time in this format: HH:MM."
	MsgTimeOutsideHours  = "Reservation time must be between 10:30 and 21:30."
	MsgTimeInPast        = "Reservation time cannot be in the past."
	MsgBadPeople         = "Reservation must indicate the number of people in a party, ranging from 1 to 6."
)

var (
	mobileNumberRegex    = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$|^\d{3}-\d{4}$`)
	reservationDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reservationTimeRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// ReservationPayload adalah data mentah dari request body.
// People sengaja bertipe any: string angka ("2") harus ditolak, bukan di-coerce.
type ReservationPayload struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	MobileNumber    string `json:"mobile_number"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	People          any    `json:"people"`
	Status          string `json:"status"`
}

// PeopleCount mengembalikan jumlah orang jika people benar-benar angka bulat.
func (p *ReservationPayload) PeopleCount() (int, bool) {
	switch v := p.People.(type) {
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

// checkCtx membawa nilai hasil parse dari check sebelumnya ke check berikutnya,
// menggantikan scratch state implisit ala middleware.
type checkCtx struct {
	date      time.Time
	dateOK    bool
	timeOfDay int // menit sejak tengah malam
	timeOK    bool
}

type check func(p *ReservationPayload, ctx *checkCtx) []string

// ReservationValidator menjalankan rantai check berurutan atas payload reservasi.
// Clock bisa di-inject supaya check "tanggal sudah lewat" dapat diuji.
type ReservationValidator struct {
	Now func() time.Time
}

func NewReservationValidator() *ReservationValidator {
	return &ReservationValidator{Now: time.Now}
}

// Validate mengembalikan daftar pelanggaran terurut tanpa duplikat.
// Slice kosong berarti payload valid. Check tidak saling memotong rantai;
// check yang inputnya gagal di-parse oleh check sebelumnya dilewati saja.
func (v *ReservationValidator) Validate(p *ReservationPayload) []string {
	checks := []check{
		v.checkFirstName,
		v.checkLastName,
		v.checkMobileNumber,
		v.checkDateFormat,
		v.checkDateNotInPast,
		v.checkDateNotTuesday,
		v.checkTimeFormat,
		v.checkTimeWithinHours,
		v.checkPeople,
		v.checkStatusOnCreate,
	}

	ctx := &checkCtx{}
	var violations []string
	for _, c := range checks {
		violations = append(violations, c(p, ctx)...)
	}
	return dedupe(violations)
}

// dedupe mempertahankan urutan kemunculan pertama
func dedupe(msgs []string) []string {
	seen := make(map[string]bool, len(msgs))
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

func (v *ReservationValidator) checkFirstName(p *ReservationPayload, _ *checkCtx) []string {
	if p.FirstName == "" {
		return []string{MsgMissingFirstName}
	}
	return nil
}

func (v *ReservationValidator) checkLastName(p *ReservationPayload, _ *checkCtx) []string {
	if p.LastName == "" {
		return []string{MsgMissingLastName}
	}
	return nil
}

func (v *ReservationValidator) checkMobileNumber(p *ReservationPayload, _ *checkCtx) []string {
	if !mobileNumberRegex.MatchString(p.MobileNumber) {
		return []string{MsgBadMobileNumber}
	}
	return nil
}

// checkDateFormat menyimpan tanggal hasil parse ke ctx untuk check berikutnya.
// Tanggal dibangun dari komponen angka di UTC, bukan lewat parse yang
// bergantung locale/timezone.
func (v *ReservationValidator) checkDateFormat(p *ReservationPayload, ctx *checkCtx) []string {
	if !reservationDateRegex.MatchString(p.ReservationDate) {
		return []string{MsgBadDateFormat}
	}
	year, _ := strconv.Atoi(p.ReservationDate[0:4])
	month, _ := strconv.Atoi(p.ReservationDate[5:7])
	day, _ := strconv.Atoi(p.ReservationDate[8:10])
	ctx.date = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	ctx.dateOK = true
	return nil
}

func (v *ReservationValidator) checkDateNotInPast(p *ReservationPayload, ctx *checkCtx) []string {
	if !ctx.dateOK {
		return nil
	}
	now := v.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if ctx.date.Before(today) {
		return []string{MsgDateInPast}
	}
	return nil
}

func (v *ReservationValidator) checkDateNotTuesday(p *ReservationPayload, ctx *checkCtx) []string {
	if !ctx.dateOK {
		return nil
	}
	if ctx.date.Weekday() == time.Tuesday {
		return []string{MsgDateOnTuesday}
	}
	return nil
}

func (v *ReservationValidator) checkTimeFormat(p *ReservationPayload, ctx *checkCtx) []string {
	if !reservationTimeRegex.MatchString(p.ReservationTime) {
		return []string{MsgBadTimeFormat}
	}
	hour, _ := strconv.Atoi(p.ReservationTime[0:2])
	minute, _ := strconv.Atoi(p.ReservationTime[3:5])
	ctx.timeOfDay = hour*60 + minute
	ctx.timeOK = true
	return nil
}

func (v *ReservationValidator) checkTimeWithinHours(p *ReservationPayload, ctx *checkCtx) []string {
	if !ctx.timeOK {
		return nil
	}
	var msgs []string
	if ctx.timeOfDay < OpeningMinutes || ctx.timeOfDay > ClosingMinutes {
		msgs = append(msgs, MsgTimeOutsideHours)
	}
	// Reservasi hari ini tidak boleh lebih awal dari jam sekarang
	if ctx.dateOK {
		now := v.Now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if ctx.date.Equal(today) && ctx.timeOfDay < now.Hour()*60+now.Minute() {
			msgs = append(msgs, MsgTimeInPast)
		}
	}
	return msgs
}

func (v *ReservationValidator) checkPeople(p *ReservationPayload, _ *checkCtx) []string {
	people, ok := p.PeopleCount()
	if !ok || people < 1 || people > 6 {
		return []string{MsgBadPeople}
	}
	return nil
}

// checkStatusOnCreate -> reservasi baru selalu berstatus "booked"
func (v *ReservationValidator) checkStatusOnCreate(p *ReservationPayload, _ *checkCtx) []string {
	if p.Status != "" && p.Status != "booked" {
		return []string{fmt.Sprintf("Reservation status must be \"booked\" when created, received: %s.", p.Status)}
	}
	return nil
}
