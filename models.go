package main

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents a registered dashboard user with a username and password hash.
type User struct {
	gorm.Model
	Username     string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
}

// SetPassword hashes the given password and stores it in PasswordHash.
func (user *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the given password with the stored PasswordHash.
func (user *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

// ProcessedImage is one measured sheet part: the stored image file plus the
// eight dimension samples produced by the measurement station.
//
// Sent is monotonic: it starts false and is flipped to true exactly once when
// the external consumer claims the record through /consume. No other code
// path writes it.
type ProcessedImage struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ImagePath string     `gorm:"not null" json:"imagePath"`
	CustomID  *string    `json:"customId"`
	L1        float64    `json:"l1"`
	L2        float64    `json:"l2"`
	L3        float64    `json:"l3"`
	L4        float64    `json:"l4"`
	L5        float64    `json:"l5"`
	W1        float64    `json:"w1"`
	W2        float64    `json:"w2"`
	W3        float64    `json:"w3"`
	Sent      bool       `gorm:"not null;default:false" json:"sent"`
	SentAt    *time.Time `json:"sentAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Filename returns the bare file name of the stored image, with the local
// "images/" path prefix stripped. This is the name the /retrieve route serves.
func (img *ProcessedImage) Filename() string {
	return imagePathPrefix.ReplaceAllString(img.ImagePath, "")
}

// DeliveredImage is the consumer-facing view of a claimed record: the local
// image path is replaced by a fully qualified URL the consumer can fetch.
type DeliveredImage struct {
	ID        uint      `json:"id"`
	CustomID  *string   `json:"customId"`
	ImageURL  string    `json:"imageUrl"`
	L1        float64   `json:"l1"`
	L2        float64   `json:"l2"`
	L3        float64   `json:"l3"`
	L4        float64   `json:"l4"`
	L5        float64   `json:"l5"`
	W1        float64   `json:"w1"`
	W2        float64   `json:"w2"`
	W3        float64   `json:"w3"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
