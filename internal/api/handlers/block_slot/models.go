package block_slot

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	Reason *string `json:"reason,omitempty"`
}
