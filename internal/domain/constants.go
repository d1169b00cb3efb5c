package domain

// Slot grid
const (
	SlotStepMinutes        = 30
	DefaultDurationMinutes = 60
)

// Booking policy defaults (applied at the call sites of the availability engine)
const (
	DefaultMinNoticeMinutes   = 0
	DefaultAdvanceBookingDays = 0 // 0 = unlimited
)

// Business validation constants
const (
	MaxStylistNameLength        = 100
	MaxCustomerNameLength       = 200
	MaxPhoneLength              = 32
	MaxServiceNameLength        = 200
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxDurationMinutes          = 480 // 8 hours
	MaxBreaksPerDay             = 10
	MaxBlockedDates             = 366
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AnyAvailable is the UI-level pseudo-stylist. It is resolved by callers of the
// availability engine and never stored or passed into the engine itself.
const AnyAvailable = "Any Available"

// InactiveStatuses список статусов неактивных записей
// Неактивные записи не занимают слот
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses список статусов активных записей
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
