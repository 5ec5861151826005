package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const TagTrucks = "Trucks"

var FuelTypes = []string{"Gasoline", "Diesel", "Electric", "Hybrid", "CNG", "LPG", "Other"}

var MileageUnits = []string{"km/l", "mpg", "l/100km"}

const DefaultMileageUnit = "km/l"

// Features are the equipment flags of a vehicle listing. Every flag defaults to false.
type Features struct {
	AirBags        bool `json:"airBags"`
	SunRoof        bool `json:"sunRoof"`
	Navigation     bool `json:"navigation"`
	AirConditioner bool `json:"airConditioner"`
	PowerSteering  bool `json:"powerSteering"`
	PowerWindows   bool `json:"powerWindows"`
	CentralLocking bool `json:"centralLocking"`
	ABS            bool `gorm:"column:abs" json:"abs"`
	AlloyWheels    bool `json:"alloyWheels"`
	LeatherSeats   bool `json:"leatherSeats"`
	BackCamera     bool `json:"backCamera"`
	KeylessEntry   bool `json:"keylessEntry"`
	PushStart      bool `json:"pushStart"`
	CruiseControl  bool `json:"cruiseControl"`
	FogLights      bool `json:"fogLights"`
	Radio          bool `json:"radio"`
	CDPlayer       bool `gorm:"column:cd_player" json:"cdPlayer"`
	DVDPlayer      bool `gorm:"column:dvd_player" json:"dvdPlayer"`
	TV             bool `gorm:"column:tv" json:"tv"`
	Bluetooth      bool `json:"bluetooth"`
	USB            bool `gorm:"column:usb" json:"usb"`
	HeatedSeats    bool `json:"heatedSeats"`
	ParkingSensors bool `json:"parkingSensors"`
	FourWheelDrive bool `json:"fourWheelDrive"`
}

// FeatureFlags maps the wire name of every flag to its field, in declaration order.
func (f *Features) FeatureFlags() []struct {
	Name  string
	Field *bool
} {
	return []struct {
		Name  string
		Field *bool
	}{
		{"airBags", &f.AirBags},
		{"sunRoof", &f.SunRoof},
		{"navigation", &f.Navigation},
		{"airConditioner", &f.AirConditioner},
		{"powerSteering", &f.PowerSteering},
		{"powerWindows", &f.PowerWindows},
		{"centralLocking", &f.CentralLocking},
		{"abs", &f.ABS},
		{"alloyWheels", &f.AlloyWheels},
		{"leatherSeats", &f.LeatherSeats},
		{"backCamera", &f.BackCamera},
		{"keylessEntry", &f.KeylessEntry},
		{"pushStart", &f.PushStart},
		{"cruiseControl", &f.CruiseControl},
		{"fogLights", &f.FogLights},
		{"radio", &f.Radio},
		{"cdPlayer", &f.CDPlayer},
		{"dvdPlayer", &f.DVDPlayer},
		{"tv", &f.TV},
		{"bluetooth", &f.Bluetooth},
		{"usb", &f.USB},
		{"heatedSeats", &f.HeatedSeats},
		{"parkingSensors", &f.ParkingSensors},
		{"fourWheelDrive", &f.FourWheelDrive},
	}
}

type Product struct {
	Base
	Title              string  `gorm:"not null"       json:"title"`
	Model              string  `                      json:"model"`
	Year               int     `gorm:"index"          json:"year"`
	UnitPrice          float64 `gorm:"not null;index" json:"unitPrice"`
	DiscountPercentage float64 `gorm:"not null"       json:"discountPercentage"`
	Quantity           int     `gorm:"not null"       json:"quantity"`
	Weight             float64 `                      json:"weight"`
	Description        string  `gorm:"type:text"      json:"description"`
	FuelType           string  `gorm:"index"          json:"fuelType"`
	Mileage            float64 `                      json:"mileage"`
	MileageUnit        string  `                      json:"mileageUnit"`
	Chassis            string  `                      json:"chassis"`
	Color              string  `                      json:"color"`
	AxleConfiguration  string  `gorm:"index"          json:"axleConfiguration"`
	VehicleGrade       string  `gorm:"index"          json:"vehicleGrade"`
	Tag                string  `gorm:"index"          json:"tag,omitempty"`

	Features Features `gorm:"embedded;embeddedPrefix:feature_" json:"features"`

	Thumbnail string                      `gorm:"not null" json:"thumbnail"`
	Images    datatypes.JSONSlice[string] `gorm:"not null" json:"images"`

	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Category   *Category `gorm:"foreignKey:CategoryID"    json:"-"`
	MakeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Make       *Brand    `gorm:"foreignKey:MakeID"        json:"-"`
}

// DiscountedPrice is derived on read and never stored.
func (p *Product) DiscountedPrice() float64 {
	if p.DiscountPercentage == 0 {
		return p.UnitPrice
	}
	return p.UnitPrice * (1 - p.DiscountPercentage/100)
}

// References returns every stored asset URL the product points at.
func (p *Product) References() []string {
	out := make([]string, 0, len(p.Images)+1)
	if p.Thumbnail != "" {
		out = append(out, p.Thumbnail)
	}
	return append(out, p.Images...)
}
