// Package store provides the read-only queries the reminder matchers and the
// records API run against the database. No matcher ever writes through it.
package store

import (
	"time"

	"gorm.io/gorm"

	"healthnudge/internal/model"
)

// Store wraps a GORM connection with the query surface the matchers need.
type Store struct {
	db *gorm.DB
}

// New creates a Store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// ActiveMedicinesForUser lists a user's active medicines, the list the
// polling client caches.
func (s *Store) ActiveMedicinesForUser(userID uint) ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("time ASC, name ASC").
		Find(&medicines).Error
	return medicines, err
}

// UsersWithReminderHour lists users whose preferred daily-log reminder hour
// equals hour.
func (s *Store) UsersWithReminderHour(hour int) ([]model.User, error) {
	var users []model.User
	err := s.db.Where("reminder_time = ?", hour).Find(&users).Error
	return users, err
}

// HasHealthLogSince reports whether the user logged any vitals at or after
// the given instant, typically local midnight.
func (s *Store) HasHealthLogSince(userID uint, since time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&model.HealthLog{}).
		Where("user_id = ? AND log_date >= ?", userID, since).
		Count(&count).Error
	return count > 0, err
}

// ActiveMedicinesDueInHour lists active medicines whose time falls within
// the hour named by prefix ("HH:"), with the owning user loaded.
func (s *Store) ActiveMedicinesDueInHour(prefix string) ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := s.db.Preload("User").
		Where("time LIKE ? AND is_active = ?", prefix+"%", true).
		Find(&medicines).Error
	return medicines, err
}

// DoctorsWithAppointmentBetween lists doctors whose next appointment falls
// in [from, to), with the owning user loaded.
func (s *Store) DoctorsWithAppointmentBetween(from, to time.Time) ([]model.Doctor, error) {
	var doctors []model.Doctor
	err := s.db.Preload("User").
		Where("next_appointment >= ? AND next_appointment < ?", from, to).
		Find(&doctors).Error
	return doctors, err
}

// UserByID fetches a single user.
func (s *Store) UserByID(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// RecentHealthLogs returns the user's newest logs, most recent first.
func (s *Store) RecentHealthLogs(userID uint, limit int) ([]model.HealthLog, error) {
	var logs []model.HealthLog
	err := s.db.Where("user_id = ?", userID).
		Order("log_date DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
