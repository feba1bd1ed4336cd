package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hhmm string) time.Time {
	t, _ := time.Parse("15:04", hhmm)
	return time.Date(2024, 5, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func TestCheckInStatus(t *testing.T) {
	start := at("08:00")
	cases := []struct {
		at   time.Time
		want Status
	}{
		{at("07:50"), StatusOnTime},
		{at("08:00"), StatusOnTime},
		{at("08:14"), StatusOnTime},
		{at("08:15"), StatusOnTime},
		{at("08:15").Add(time.Second), StatusLate},
		{at("08:16"), StatusLate},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CheckInStatus(start, tc.at, DefaultGracePeriod), tc.at.Format(time.TimeOnly))
	}
}

func TestIsEarlyLeave(t *testing.T) {
	end := at("17:00")
	assert.True(t, IsEarlyLeave(end, at("16:44"), DefaultGracePeriod))
	assert.False(t, IsEarlyLeave(end, at("16:45"), DefaultGracePeriod))
	assert.False(t, IsEarlyLeave(end, at("16:46"), DefaultGracePeriod))
	assert.False(t, IsEarlyLeave(end, at("17:30"), DefaultGracePeriod))
}

func TestCheckOutStatus(t *testing.T) {
	end := at("17:00")
	assert.Equal(t, StatusEarlyLeave, CheckOutStatus(StatusLate, &end, at("16:00"), DefaultGracePeriod))
	assert.Equal(t, StatusEarlyLeave, CheckOutStatus(StatusOnTime, &end, at("16:44"), DefaultGracePeriod))
	assert.Equal(t, StatusLate, CheckOutStatus(StatusLate, &end, at("16:46"), DefaultGracePeriod))
	assert.Equal(t, StatusOnTime, CheckOutStatus(StatusOnTime, nil, at("09:00"), DefaultGracePeriod))
}

func TestCalculateWorkHours(t *testing.T) {
	cases := []struct {
		in, out time.Time
		want    string
	}{
		{at("08:00"), at("17:00"), "9"},
		{at("08:00"), at("16:30"), "8.5"},
		{at("08:00"), at("08:20"), "0.33"},
		{at("08:00"), at("08:40"), "0.67"},
		{at("08:00"), at("08:00"), "0"},
		{at("08:00"), at("16:44"), "8.73"},
		{at("08:00"), at("08:00").Add(25 * time.Second), "0.01"},
		{at("08:00"), at("08:00").Add(17 * time.Second), "0"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CalculateWorkHours(tc.in, tc.out).String())
	}
}
