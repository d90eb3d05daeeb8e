package domain

type ClassType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Session is a scheduled class instance led by a trainer. SpotsRemaining and
// IsFull are computed against confirmed bookings at read time.
type Session struct {
	ID             int64   `json:"id"`
	ClassTypeID    int64   `json:"class_type_id"`
	ClassType      string  `json:"class_type"`
	TrainerID      string  `json:"trainer_id"`
	TrainerName    string  `json:"trainer_name"`
	Date           string  `json:"date"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Price          float64 `json:"price"`
	MaxMembers     int     `json:"max_members"`
	SpotsRemaining int     `json:"spots_remaining"`
	IsFull         bool    `json:"is_full"`
}

// SessionFilter carries the optional query parameters of the availability listing.
type SessionFilter struct {
	ClassTypeID int64
	DateFrom    string
	DateTo      string
}

type NewSession struct {
	ClassTypeID int64   `json:"class_type_id"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Price       float64 `json:"price"`
	MaxMembers  int     `json:"max_members"`
}
