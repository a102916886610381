package tz

import "time"

// Taipei is the Asia/Taipei location (UTC+8, no DST).
var Taipei *time.Location

func init() {
	var err error
	Taipei, err = time.LoadLocation("Asia/Taipei")
	if err != nil {
		panic("tz: load Asia/Taipei: " + err.Error())
	}
}
