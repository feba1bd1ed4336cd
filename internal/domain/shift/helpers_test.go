package shift

func mustParseClockTime(s string) ClockTime {
	t, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return t
}
