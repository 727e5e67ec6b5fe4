package get_availability_rule

import (
	"fmt"
	"strconv"
	"time"
)

// ParseWeekday разбирает день недели из URL: 0 = воскресенье, 6 = суббота
func ParseWeekday(raw string) (time.Weekday, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < int(time.Sunday) || n > int(time.Saturday) {
		return 0, fmt.Errorf("weekday must be 0..6, got %q", raw)
	}
	return time.Weekday(n), nil
}
