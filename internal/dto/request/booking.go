package request

// CreateBookingRequest is the public booking form payload. It has no id,
// status, price or createdAt, so the decoder drops any such keys.
type CreateBookingRequest struct {
	FirstName     string  `json:"firstName" validate:"notblank"`
	LastName      string  `json:"lastName" validate:"notblank"`
	Email         string  `json:"email" validate:"notblank"`
	Phone         string  `json:"phone" validate:"notblank"`
	Address       string  `json:"address" validate:"notblank"`
	City          string  `json:"city" validate:"notblank"`
	ZipCode       string  `json:"zipCode" validate:"notblank"`
	ServiceType   string  `json:"serviceType" validate:"required,oneof=standard premium complete"`
	LawnSize      int     `json:"lawnSize" validate:"required,gt=0,lte=2147483647"`
	LawnCondition *string `json:"lawnCondition,omitempty" validate:"omitempty,oneof=good fair poor"`
	Obstacles     *string `json:"obstacles,omitempty"`
	ServiceDate   string  `json:"serviceDate" validate:"required,isodate"`
	ServiceTime   string  `json:"serviceTime" validate:"required,oneof=morning afternoon evening"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved completed cancelled"`
}
