package types

// ParseTime парсит строку "HH:MM"
func ParseTime(s string) (TimeString, error) {
	return NewTimeStringFromString(s)
}

// FormatTime возвращает "HH:MM"
func FormatTime(t TimeString) string {
	return fromMinutes(t.Minutes()).String()
}

// AddMinutes прибавляет n минут ко времени t
func AddMinutes(t TimeString, n int) (TimeString, error) {
	return t.AddMinutes(n)
}

// MaxTime возвращает более позднее из двух времен
func MaxTime(a, b string) (string, error) {
	ta, tb, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	if ta.IsAfter(tb) {
		return ta.String(), nil
	}
	return tb.String(), nil
}

// MinTime возвращает более раннее из двух времен
func MinTime(a, b string) (string, error) {
	ta, tb, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	if ta.IsBefore(tb) {
		return ta.String(), nil
	}
	return tb.String(), nil
}

func parsePair(a, b string) (TimeString, TimeString, error) {
	ta, err := ParseTime(a)
	if err != nil {
		return "", "", err
	}
	tb, err := ParseTime(b)
	if err != nil {
		return "", "", err
	}
	return ta, tb, nil
}
