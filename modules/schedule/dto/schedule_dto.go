package dto

// SlotStatus is one bookable slot and whether it is currently free.
type SlotStatus struct {
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// DayScheduleResponse lists a date's slots in booking order.
type DayScheduleResponse struct {
	Date  string       `json:"date"`
	Slots []SlotStatus `json:"slots"`
}
