package crypto

import (
	"time"

	"github.com/xlzd/gotp"
)

// VerifyTOTP checks a 6-digit SHA-1 TOTP code with a 30-second step against
// the base32 secret, accepting one step of clock skew in either direction.
func VerifyTOTP(code, secret string) bool {
	return VerifyTOTPAt(code, secret, time.Now())
}

func VerifyTOTPAt(code, secret string, at time.Time) bool {
	if code == "" || secret == "" {
		return false
	}
	totp := gotp.NewDefaultTOTP(secret)
	ts := at.Unix()
	for _, offset := range []int64{0, -30, 30} {
		if totp.Verify(code, ts+offset) {
			return true
		}
	}
	return false
}
