package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ── 整数秒时间戳自定义类型 ──

// UnixTime 以 UTC 秒级时间戳（INTEGER）持久化的绝对时刻，实现 GORM Scanner/Valuer 接口。
// 读取后始终为 UTC，比较只在绝对时刻上进行。
type UnixTime struct {
	time.Time
}

// NewUnixTime 截断到秒并转为 UTC
func NewUnixTime(t time.Time) UnixTime {
	return UnixTime{Time: time.Unix(t.Unix(), 0).UTC()}
}

// Scan 将数据库返回的整数秒解析为 UTC 时间。
func (u *UnixTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		u.Time = time.Time{}
		return nil
	case int64:
		u.Time = time.Unix(v, 0).UTC()
		return nil
	case int32:
		u.Time = time.Unix(int64(v), 0).UTC()
		return nil
	case time.Time:
		u.Time = v.UTC()
		return nil
	default:
		return fmt.Errorf("UnixTime.Scan: unsupported type %T", src)
	}
}

// Value 序列化为整数秒。
func (u UnixTime) Value() (driver.Value, error) {
	return u.Unix(), nil
}
