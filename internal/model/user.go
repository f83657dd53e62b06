package model

import "time"

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Avatar 外部图床返回的引用：对象 ID + 访问地址
type Avatar struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(20);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null;unique;index" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Gender    string    `gorm:"type:varchar(10);not null" json:"gender"`
	DOB       time.Time `gorm:"not null" json:"dob"`
	Avatar    Avatar    `gorm:"serializer:json;type:json" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 强制指定表名
func (User) TableName() string {
	return "users"
}
