package models

import "time"

// Branch is a dealership location. Coordinates feed the sales map view.
type Branch struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type VehicleStatus string

const (
	VehicleInStock  VehicleStatus = "IN_STOCK"
	VehicleReserved VehicleStatus = "RESERVED"
	VehicleSold     VehicleStatus = "SOLD"
)

type Vehicle struct {
	ID     int           `json:"id"`
	VIN    string        `json:"vin"`
	Make   string        `json:"make"`
	Model  string        `json:"model"`
	Year   int           `json:"year"`
	Price  float64       `json:"price"`
	Status VehicleStatus `json:"status"`
	Branch *Branch       `json:"branch,omitempty"`
}

type Customer struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type OrderStatus string

const (
	OrderDraft     OrderStatus = "DRAFT"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order ties a customer to a vehicle at a branch. The customer, vehicle and
// branch relations are present only when the request populated them.
type Order struct {
	ID        int         `json:"id"`
	Number    string      `json:"number"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
	Customer  *Customer   `json:"customer,omitempty"`
	Vehicle   *Vehicle    `json:"vehicle,omitempty"`
	Branch    *Branch     `json:"branch,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// SalesSummary is an aggregate of completed orders per branch, the data
// behind the monitoring map.
type SalesSummary struct {
	BranchID   int
	BranchName string
	Latitude   float64
	Longitude  float64
	Orders     int
	Revenue    float64
}
