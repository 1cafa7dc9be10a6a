package model

import (
	"testing"
	"time"
)

func TestUnixTime_ScanValue(t *testing.T) {
	shanghai := time.FixedZone("UTC+8", 8*3600)
	local := time.Date(2024, 10, 1, 18, 0, 0, 0, shanghai) // = 2024-10-01T10:00Z

	u := NewUnixTime(local)
	v, err := u.Value()
	if err != nil {
		t.Fatalf("Value 失败: %v", err)
	}
	secs, ok := v.(int64)
	if !ok {
		t.Fatalf("Value 应返回 int64，实际 %T", v)
	}
	if secs != local.Unix() {
		t.Errorf("秒数不一致: %d != %d", secs, local.Unix())
	}

	var back UnixTime
	if err := back.Scan(secs); err != nil {
		t.Fatalf("Scan 失败: %v", err)
	}
	if !back.Equal(local) {
		t.Errorf("往返后时刻不同: %s != %s", back.Time, local)
	}
	if back.Location() != time.UTC {
		t.Errorf("读取结果应为 UTC，实际=%s", back.Location())
	}
}

func TestUnixTime_ScanUnsupported(t *testing.T) {
	var u UnixTime
	if err := u.Scan("2024-10-01"); err == nil {
		t.Error("字符串输入应报错")
	}
	if err := u.Scan(nil); err != nil || !u.IsZero() {
		t.Errorf("nil 应得到零值: %v", err)
	}
}

func TestNewUnixTime_TruncatesSubSecond(t *testing.T) {
	ts := time.Date(2024, 9, 15, 23, 0, 0, 999_000_000, time.UTC)
	if got := NewUnixTime(ts); got.Nanosecond() != 0 {
		t.Errorf("应截断到秒，实际纳秒=%d", got.Nanosecond())
	}
}

func TestParseAssignmentType(t *testing.T) {
	if ParseAssignmentType("Quiz") != AssignmentQuiz {
		t.Error("Quiz 解析错误")
	}
	if ParseAssignmentType("Lab") != AssignmentOther {
		t.Error("未知类型应归为 Other")
	}
	if IsValidAssignmentType("Lab") {
		t.Error("Lab 不是合法类型")
	}
	if !IsValidAssignmentType("Essay") {
		t.Error("Essay 是合法类型")
	}
}

func TestAssignmentType_Scan(t *testing.T) {
	var typ AssignmentType
	if err := typ.Scan([]byte("Midterm")); err != nil || typ != AssignmentMidterm {
		t.Errorf("Midterm 读取错误: %v %s", err, typ)
	}
	if err := typ.Scan("Lab"); err != nil || typ != AssignmentOther {
		t.Errorf("未知类型读取应归为 Other，实际=%s", typ)
	}
	if err := typ.Scan(int64(3)); err == nil {
		t.Error("整数列应返回错误")
	}
}

func TestParseTerm(t *testing.T) {
	if _, err := ParseTerm("Fall"); err != nil {
		t.Errorf("Fall 应合法: %v", err)
	}
	if _, err := ParseTerm("Summer"); err == nil {
		t.Error("Summer 应非法")
	}
}

func TestSemesterLabel(t *testing.T) {
	s := &Semester{Term: TermSpring, Year: 2025}
	if s.Label() != "Spring 2025" {
		t.Errorf("Label 不符: %s", s.Label())
	}
}
