package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bookingflow/models"
)

const (
	defaultSlotMinutes = 60
	dateLayout         = "2006-01-02"
)

// GenerateSlots derives candidate start times for date from the config's
// operating hours. It steps from opening time in slotDuration increments and
// emits a slot only while it starts strictly before closing time. Closed,
// unconfigured or malformed days yield an empty list.
func GenerateSlots(cfg models.BookingConfig, date string) []models.TimeSlot {
	slots := []models.TimeSlot{}

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return slots
	}
	hours, ok := cfg.OperatingHours[strings.ToLower(day.Weekday().String())]
	if !ok || hours.Closed {
		return slots
	}

	open, err := parseClock(hours.Open)
	if err != nil {
		return slots
	}
	closing, err := parseClock(hours.Close)
	if err != nil {
		return slots
	}

	step := cfg.SlotDuration
	if step <= 0 {
		step = defaultSlotMinutes
	}

	for start := open; start < closing; start += step {
		slots = append(slots, models.TimeSlot{StartTime: formatClock(start)})
	}
	return slots
}

// parseClock converts "HH:MM" to minutes after midnight. "24:00" is accepted
// as a closing time.
func parseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	hh, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	mm, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	if hh < 0 || mm < 0 || mm > 59 || hh > 24 || (hh == 24 && mm != 0) {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return hh*60 + mm, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
