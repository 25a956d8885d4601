package reschedule_delayed

// Response итог одного запуска переноса отложенных бронирований
type Response struct {
	ProcessedCount   int `json:"processedCount"`   // Сколько отложенных бронирований рассмотрено
	RescheduledCount int `json:"rescheduledCount"` // Сколько перенесено на новый слот
	SkippedCount     int `json:"skippedCount"`     // Сколько осталось без подходящего слота
	FailedCount      int `json:"failedCount"`      // Сколько завершилось ошибкой
}
