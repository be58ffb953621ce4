package model

import "time"

// User is an account that owns medicines, doctors and health logs.
// ReminderTime is the local hour (0-23) at which the daily-log nudge may fire.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone        string `gorm:"size:20" json:"phone,omitempty"`
	ReminderTime int    `gorm:"not null;default:20" json:"reminderTime"`
	AIDataAccess bool   `gorm:"not null;default:false" json:"aiDataAccess"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Medicine is a scheduled medication. Time is the 24-hour "HH:MM" at which
// a reminder is due; an empty Time means no reminder applies. Frequency is
// stored but the matchers only distinguish active from inactive.
type Medicine struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"index;not null" json:"userId"`
	User         User   `json:"-"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Dosage       string `gorm:"size:100" json:"dosage"`
	Frequency    string `gorm:"size:100;default:Daily" json:"frequency"`
	Time         string `gorm:"size:10" json:"time"`
	Instructions string `gorm:"type:text" json:"instructions"`
	IsActive     bool   `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Doctor holds a contact and an optional upcoming appointment.
type Doctor struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"index;not null" json:"userId"`
	User            User       `json:"-"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	Specialization  string     `gorm:"size:255" json:"specialization"`
	Hospital        string     `gorm:"size:255" json:"hospital"`
	Phone           string     `gorm:"size:50" json:"phone"`
	Notes           string     `gorm:"type:text" json:"notes"`
	NextAppointment *time.Time `gorm:"index" json:"nextAppointment"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// HealthLog is a single vitals entry.
type HealthLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"userId"`
	LogDate    time.Time `gorm:"index;not null" json:"logDate"`
	Systolic   *int      `json:"systolic"`
	Diastolic  *int      `json:"diastolic"`
	BloodSugar *float64  `json:"bloodSugar"`
	Weight     *float64  `json:"weight"`
	HeartRate  *int      `json:"heartRate"`
	Notes      string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"-"`
}

// Reminder is a user-defined reminder record kept for the records API.
// The matchers read users, medicines and doctors directly.
type Reminder struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"index;not null" json:"userId"`
	Type        string `gorm:"size:50;not null" json:"type"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Time        string `gorm:"size:10" json:"time"`
	Frequency   string `gorm:"size:50;default:once" json:"frequency"`
	IsActive    bool   `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `json:"-"`
}
