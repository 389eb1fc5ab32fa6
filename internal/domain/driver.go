package domain

import "regexp"

type (
	// DriverStatus represents the duty status of a driver.
	DriverStatus string
	// VehicleType represents the vehicle a driver operates.
	VehicleType string
)

// Driver represents a delivery driver.
type Driver struct {
	ID      int64
	Name    string
	Phone   string
	Status  DriverStatus
	Vehicle VehicleType
}

// PartialDriverUpdate carries optional fields to update a driver.
// A nil field means "do not change" that attribute.
type PartialDriverUpdate struct {
	ID      int64
	Name    *string
	Phone   *string
	Status  *DriverStatus
	Vehicle *VehicleType
}

// List of possible driver statuses
const (
	DriverAvailable DriverStatus = "available"
	DriverBusy      DriverStatus = "busy"
	DriverOffDuty   DriverStatus = "off_duty"
)

// List of possible vehicle types
const (
	VehicleTruck VehicleType = "truck"
	VehicleVan   VehicleType = "van"
)

var allowedDriverStatuses = [...]DriverStatus{
	DriverAvailable, DriverBusy, DriverOffDuty,
}

var allowedVehicles = [...]VehicleType{
	VehicleTruck, VehicleVan,
}

// Valid checks if the DriverStatus is valid
func (s DriverStatus) Valid() bool {
	for _, v := range allowedDriverStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the VehicleType is valid
func (v VehicleType) Valid() bool {
	for _, a := range allowedVehicles {
		if v == a {
			return true
		}
	}
	return false
}

// rePhone is a regex to validate phone numbers
var rePhone = regexp.MustCompile(`^\+[0-9]{11}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
