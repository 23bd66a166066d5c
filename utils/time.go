package utils

import (
	"time"
)

var istLocation = loadIST()

func loadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// 无 tzdata 的环境下退回固定偏移
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// FormatIST 邮件里展示用的固定时区时间戳，如 "29 Aug 2026, 3:04 PM IST"
func FormatIST(t time.Time) string {
	return t.In(istLocation).Format("02 Jan 2006, 3:04 PM") + " IST"
}
