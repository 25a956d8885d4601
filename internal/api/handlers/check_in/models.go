package check_in

// CheckInRequest HTTP request model. QR-код опционален:
// проверяется только если предъявлен.
type CheckInRequest struct {
	QRCode *string `json:"qrCode,omitempty"`
}
