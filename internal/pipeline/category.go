package pipeline

import "fmt"

// Category is the classifier label. Values match the training labels.
type Category int

const (
	Normal Category = iota
	Thermal
	Electrical
	Mechanical
	Environmental
)

var categoryNames = [...]string{
	Normal:        "Normal Operation",
	Thermal:       "Thermal Failure",
	Electrical:    "Electrical Failure",
	Mechanical:    "Mechanical Failure",
	Environmental: "Environmental Failure",
}

var categoryDevices = map[Category]string{
	Thermal:       "Battery Pack",
	Electrical:    "Battery Management System (BMS)",
	Mechanical:    "Electric Motor Bearings",
	Environmental: "Connectors and Cables",
}

// Categories lists every category in label order.
func Categories() []Category {
	return []Category{Normal, Thermal, Electrical, Mechanical, Environmental}
}

func CategoryFromLabel(label int) (Category, error) {
	if label < 0 || label >= len(categoryNames) {
		return 0, fmt.Errorf("classifier returned unknown label %d", label)
	}
	return Category(label), nil
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Device names the component at fault. Normal Operation has none.
func (c Category) Device() (string, bool) {
	d, ok := categoryDevices[c]
	return d, ok
}
