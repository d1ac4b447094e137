package utils

import (
	"AllWell/config"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// hash 化 PIN 存储，盐 + 工牌号 + PIN，同一 PIN 不同工牌得到不同哈希

func HashPIN(badgeCode, pin string) string {
	key := config.Cfg.PINHashSalt

	sum := sha256.Sum256([]byte(key + ":" + badgeCode + ":" + pin))

	return hex.EncodeToString(sum[:])
}

// VerifyPIN 常数时间比较，避免时序侧信道
func VerifyPIN(badgeCode, pin, storedHash string) bool {
	computed := HashPIN(badgeCode, pin)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
