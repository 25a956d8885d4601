package licenseservice

// Allowance лимиты бронирований компании по тарифному плану
type Allowance struct {
	CompanyID     int64  `json:"companyId"`
	PlanCode      string `json:"planCode"`
	Active        bool   `json:"active"`
	BookingsUsed  int    `json:"bookingsUsed"`
	BookingsLimit int    `json:"bookingsLimit"` // 0 - без ограничений
}

// HasCapacity сообщает, позволяет ли тариф создать еще одно бронирование
func (a *Allowance) HasCapacity() bool {
	if !a.Active {
		return false
	}
	return a.BookingsLimit == 0 || a.BookingsUsed < a.BookingsLimit
}
