package utils

// Percent возвращает part/whole в процентах.
//
// ok = false, если whole <= 0: деление не выполняется.
func Percent(part, whole int64) (pct float64, ok bool) {
	if whole <= 0 {
		return 0, false
	}
	return float64(part) / float64(whole) * 100, true
}
