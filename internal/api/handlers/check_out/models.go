package check_out

// CheckOutRequest HTTP request model. QR-код опционален:
// проверяется только если предъявлен.
type CheckOutRequest struct {
	QRCode *string `json:"qrCode,omitempty"`
}
