package utils

import "time"

const (
	TimeLayout = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
)

func FormatTime(t time.Time) string {
	return t.Local().Format(TimeLayout)
}

func FormatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatTime(*t)
}

func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
