package dtos

import "net/url"

// NotificationDTO is the raw, untrusted field bag of an inbound IPN form
// POST. Every value stays a string until the validator has checked it.
type NotificationDTO struct {
	Raw map[string]string
}

// NewNotificationDTO flattens parsed form values into the field bag.
// Repeated fields keep their first value, matching PHP's $_POST semantics
// the processor was built against.
func NewNotificationDTO(form url.Values) *NotificationDTO {
	raw := make(map[string]string, len(form))
	for name, values := range form {
		if len(values) > 0 {
			raw[name] = values[0]
		}
	}
	return &NotificationDTO{Raw: raw}
}

func (d *NotificationDTO) Get(name string) string {
	return d.Raw[name]
}
