package domain

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ExpectedSignature вычисляет ожидаемую подпись платежа:
// hex(HMAC-SHA256(secret, orderID + "|" + paymentID)). Функция чистая.
func ExpectedSignature(gatewayOrderID, gatewayPaymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature сравнивает присланную подпись с ожидаемой.
// Точное строковое сравнение, как у шлюза.
func VerifySignature(gatewayOrderID, gatewayPaymentID, supplied, secret string) bool {
	return ExpectedSignature(gatewayOrderID, gatewayPaymentID, secret) == supplied
}
