package utils

import "strconv"

// Int64ToStr formats an int64 ID for log messages and error details.
func Int64ToStr(num int64) string {
	return strconv.FormatInt(num, 10)
}
