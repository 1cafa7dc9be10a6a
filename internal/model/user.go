package model

// User 用户表，对应 users
type User struct {
	UserID       int64    `gorm:"column:id;primaryKey;autoIncrement"                json:"user_id"`
	Username     string   `gorm:"type:varchar(100);not null;uniqueIndex"            json:"username"`
	PasswordHash string   `gorm:"type:varchar(255);not null"                        json:"-"`
	CreatedAt    UnixTime `gorm:"column:created_at;not null;autoCreateTime:false"   json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
