package entity

import "time"

type Engine string

const (
	EnginePetrol   Engine = "petrol"
	EngineDiesel   Engine = "diesel"
	EngineElectric Engine = "electric"
	EngineHybrid   Engine = "hybrid"
)

type Segment string

const (
	SegmentSedan Segment = "sedan"
	SegmentSUV   Segment = "suv"
)

func (e Engine) Valid() bool {
	switch e {
	case EnginePetrol, EngineDiesel, EngineElectric, EngineHybrid:
		return true
	}
	return false
}

func (s Segment) Valid() bool {
	switch s {
	case SegmentSedan, SegmentSUV:
		return true
	}
	return false
}

// Car is a single listing offered for browsing. Images holds the ordered
// public URLs of the uploaded photos. OwnerUsername is populated on reads
// by joining the owning user; it is never stored on the car document.
type Car struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Company       string    `json:"company"`
	Engine        Engine    `json:"engine"`
	Segment       Segment   `json:"segment"`
	Dealer        string    `json:"dealer"`
	Images        []string  `json:"images"`
	UserID        string    `json:"userId"`
	OwnerUsername string    `json:"username,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
