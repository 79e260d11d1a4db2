package noop

import "github.com/kryne-engine/kryne2/hal"

// init registers the noop provider with the HAL backend registry.
func init() {
	hal.RegisterProvider(Provider{})
}
