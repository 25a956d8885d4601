package notifyservice

// BookingRescheduledNotification уведомление о переносе бронирования
// на новый слот
type BookingRescheduledNotification struct {
	BookingID     int64  `json:"bookingId"`
	BookingNumber string `json:"bookingNumber"`
	CompanyID     int64  `json:"companyId"`
	DriverID      *int64 `json:"driverId,omitempty"`
	OldSlotID     int64  `json:"oldSlotId"`
	NewSlotID     int64  `json:"newSlotId"`
	NewSlotDate   string `json:"newSlotDate"`
	NewTimeStart  string `json:"newTimeStart"`
	NewTimeEnd    string `json:"newTimeEnd"`
}
