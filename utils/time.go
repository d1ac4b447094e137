package utils

import (
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate 解析 ISO 日期字符串，空串取今天（本地时区，零点）
func ParseDate(dateStr string, now time.Time) (time.Time, error) {
	if dateStr == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}

	parsed, err := time.ParseInLocation(DateLayout, dateStr, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

// ParseTime 解析时间字符串（格式：HH:MM:SS）并应用到指定日期
func ParseTime(timeStr string, date time.Time) (time.Time, error) {
	if timeStr == "" {
		return date, nil
	}

	parsedTime, err := time.Parse("15:04:05", timeStr)
	if err != nil {
		return date, err
	}

	return time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		parsedTime.Hour(),
		parsedTime.Minute(),
		parsedTime.Second(),
		0,
		date.Location(),
	), nil
}
