// internal/models/aircraft.go
package models

// Aircraft is the parent record holding the basic identity of an aircraft.
// It owns exactly one AircraftPerformance row; deleting the aircraft deletes it.
type Aircraft struct {
	ID           uint         `gorm:"column:aircraft_id;primaryKey;autoIncrement" json:"aircraft_id"`
	Name         string       `gorm:"not null" json:"name" binding:"required"`
	Manufacturer string       `gorm:"not null" json:"manufacturer" binding:"required"`
	AircraftType AircraftType `gorm:"not null" json:"aircraft_type" binding:"required"`
	FirstFlight  *string      `json:"first_flight" binding:"omitempty,datetime=2006-01-02"`

	Performance AircraftPerformance `gorm:"foreignKey:AircraftID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"aircraft_data"`
}

func (Aircraft) TableName() string {
	return "aircrafts"
}
