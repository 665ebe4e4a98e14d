package placeholder

import (
	"fmt"
	"regexp"
	"time"

	"github.com/ncruces/go-strftime"
)

// Date keywords.
const (
	DateNow        = "now"
	DateCreatedAt  = "created_at"
	DateModifiedAt = "modified_at"
)

// DefaultDateFormat is used when a date placeholder carries no format.
const DefaultDateFormat = "%Y-%m-%d"

// DateKeywords lists the date placeholders in hint order.
var DateKeywords = []string{DateNow, DateCreatedAt, DateModifiedAt}

// datePattern matches {now}, {created_at(%Y)} and friends. The format may not
// contain a closing parenthesis so two placeholders never merge.
var datePattern = regexp.MustCompile(`\{(now|created_at|modified_at)(?:\(([^)]+)\))?\}`)

// FileTimes carries the timestamps of one file.
type FileTimes struct {
	Created  time.Time
	Modified time.Time
}

// Timestamps looks up the current on-disk timestamps of a file.
type Timestamps interface {
	FileTimes(directory, name string) (FileTimes, error)
}

// DateEvaluator resolves date placeholders.
type DateEvaluator struct {
	now   func() time.Time
	times Timestamps
}

// NewDateEvaluator creates a DateEvaluator. A nil clock means time.Now.
func NewDateEvaluator(times Timestamps, clock func() time.Time) *DateEvaluator {
	if clock == nil {
		clock = time.Now
	}
	return &DateEvaluator{now: clock, times: times}
}

// HasDate reports whether template contains a date placeholder.
func HasDate(template string) bool {
	return datePattern.MatchString(template)
}

// Apply replaces the date placeholders of template for the file name in
// directory. File timestamps are looked up once per call, only when the
// template needs them.
func (d *DateEvaluator) Apply(template, directory, name string) (string, error) {
	matches := datePattern.FindAllStringSubmatchIndex(template, -1)
	if len(matches) == 0 {
		return template, nil
	}

	var (
		ft      FileTimes
		fetched bool
	)
	now := d.now()

	out := make([]byte, 0, len(template))
	last := 0
	for _, m := range matches {
		out = append(out, template[last:m[0]]...)
		last = m[1]

		kind := template[m[2]:m[3]]
		format := DefaultDateFormat
		if m[4] >= 0 {
			format = template[m[4]:m[5]]
		}

		var t time.Time
		switch kind {
		case DateNow:
			t = now
		case DateCreatedAt, DateModifiedAt:
			if !fetched {
				if d.times == nil {
					return "", fmt.Errorf("no timestamp source for %s", name)
				}
				var err error
				ft, err = d.times.FileTimes(directory, name)
				if err != nil {
					return "", err
				}
				fetched = true
			}
			if kind == DateCreatedAt {
				t = ft.Created
			} else {
				t = ft.Modified
			}
		}

		out = strftime.AppendFormat(out, format, t)
	}
	out = append(out, template[last:]...)

	return string(out), nil
}
