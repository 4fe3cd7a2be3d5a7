package service

import (
	"fmt"
	"strings"
	"time"
)

// DateRangeInput 日期范围输入（YYYY-MM-DD 或 RFC3339）
type DateRangeInput struct {
	Date     string
	DateFrom string
	DateTo   string
}

// ResolveDateRange 解析为闭区间：Date 覆盖单日，否则分别取 DateFrom 当日开始与 DateTo 当日结束
func ResolveDateRange(input DateRangeInput, loc *time.Location) (*time.Time, *time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if day := strings.TrimSpace(input.Date); day != "" {
		start, err := parseDay(day, loc)
		if err != nil {
			return nil, nil, err
		}
		end := endOfDay(start)
		return &start, &end, nil
	}

	var from, to *time.Time
	if raw := strings.TrimSpace(input.DateFrom); raw != "" {
		start, err := parseDay(raw, loc)
		if err != nil {
			return nil, nil, err
		}
		from = &start
	}
	if raw := strings.TrimSpace(input.DateTo); raw != "" {
		day, err := parseDay(raw, loc)
		if err != nil {
			return nil, nil, err
		}
		end := endOfDay(day)
		to = &end
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("%w: date_from after date_to", ErrDateRangeInvalid)
	}
	return from, to, nil
}

func parseDay(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateRangeInvalid, raw)
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

func endOfDay(dayStart time.Time) time.Time {
	return dayStart.AddDate(0, 0, 1).Add(-time.Millisecond)
}
