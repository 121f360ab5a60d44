package model

import (
	"fmt"
	"strings"
)

// Summary renders the human readable details line of an invoice.
func Summary(roomNumber, nights int, serviceNames []string) string {
	services := "no services"
	if len(serviceNames) > 0 {
		services = "services: " + strings.Join(serviceNames, ", ")
	}

	return fmt.Sprintf("room %d, %d night(s), %s", roomNumber, nights, services)
}
