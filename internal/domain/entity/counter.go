package entity

// Counter is a named, monotonically increasing sequence.
type Counter struct {
	Name  string `gorm:"type:varchar(100);primaryKey" json:"name"`
	Value int64  `gorm:"not null;default:0" json:"value"`
}

func (Counter) TableName() string {
	return "counters"
}
