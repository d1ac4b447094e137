package utils

import (
	"regexp"
)

var (
	badgeCodeRe = regexp.MustCompile(`^[A-Z]{2}\d{4,8}$`)
	pinRe       = regexp.MustCompile(`^\d{4,6}$`)
)

// ValidateBadgeCode 工牌号格式：两位大写字母 + 4~8 位数字
func ValidateBadgeCode(badgeCode string) bool {
	return badgeCodeRe.MatchString(badgeCode)
}

// ValidatePIN PIN 格式：4~6 位数字
func ValidatePIN(pin string) bool {
	return pinRe.MatchString(pin)
}

// ValidatePhone 值班手机号格式
func ValidatePhone(phone string) bool {
	matched, _ := regexp.MatchString(`^1[3-9]\d{9}$`, phone)
	return matched
}
