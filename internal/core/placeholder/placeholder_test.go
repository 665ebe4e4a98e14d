package placeholder

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Counter Tests
// ============================================================================

func TestNewCounterSlots_Seeds(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []int
	}{
		{name: "no counters", template: "plain_{now}", want: []int{}},
		{name: "default start", template: "{counter}", want: []int{1}},
		{name: "explicit start", template: "{counter(5)}", want: []int{5}},
		{name: "zero start", template: "{counter(0,1,0)}", want: []int{0}},
		{name: "one slot per occurrence", template: "{counter}_{counter}_{counter(7,2,3)}", want: []int{1, 1, 7}},
		{name: "spaces after commas", template: "{counter(3, 2, 4)}", want: []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := NewCounterSlots(tt.template)
			assert.Equal(t, len(tt.want), slots.Len())
			assert.Equal(t, tt.want, slots.Values())
		})
	}
}

func TestCounterSlots_Apply(t *testing.T) {
	slots := NewCounterSlots("file_{counter}_{counter(1, 2, 3)}.txt")

	assert.Equal(t, "file_1_001.txt", slots.Apply("file_{counter}_{counter(1, 2, 3)}.txt"))
	assert.Equal(t, []int{2, 3}, slots.Values())

	assert.Equal(t, "file_2_003.txt", slots.Apply("file_{counter}_{counter(1, 2, 3)}.txt"))
	assert.Equal(t, []int{3, 5}, slots.Values())
}

func TestCounterSlots_SequenceAcrossFiles(t *testing.T) {
	template := "{counter(5,2,3)}"
	slots := NewCounterSlots(template)

	var got []string
	for i := 0; i < 3; i++ {
		got = append(got, slots.Apply(template))
	}

	assert.Equal(t, []string{"005", "007", "009"}, got)
}

func TestCounterSlots_NoCountersIsNoop(t *testing.T) {
	slots := NewCounterSlots("file_no_counter.txt")

	assert.Equal(t, 0, slots.Len())
	assert.Equal(t, "file_no_counter.txt", slots.Apply("file_no_counter.txt"))
}

func TestCounterSlots_ZeroStep(t *testing.T) {
	slots := NewCounterSlots("{counter(4,0,2)}")

	assert.Equal(t, "04", slots.Apply("{counter(4,0,2)}"))
	assert.Equal(t, "04", slots.Apply("{counter(4,0,2)}"))
}

func TestCounterSlots_PaddingShorterThanValue(t *testing.T) {
	slots := NewCounterSlots("{counter(1234,1,2)}")

	assert.Equal(t, "1234", slots.Apply("{counter(1234,1,2)}"))
}

// ============================================================================
// Date Tests
// ============================================================================

type stubTimestamps struct {
	times FileTimes
	err   error
	calls int
}

func (s *stubTimestamps) FileTimes(directory, name string) (FileTimes, error) {
	s.calls++
	return s.times, s.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestDateEvaluator_Apply(t *testing.T) {
	stamps := &stubTimestamps{times: FileTimes{
		Created:  time.Date(2020, 1, 1, 8, 30, 0, 0, time.Local),
		Modified: time.Date(2021, 1, 1, 17, 45, 10, 0, time.Local),
	}}
	eval := NewDateEvaluator(stamps, fixedClock(time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)))

	tests := []struct {
		template string
		want     string
	}{
		{"{created_at(%Y-%m-%d)}", "2020-01-01"},
		{"{modified_at(%Y-%m-%d)}", "2021-01-01"},
		{"{now(%Y-%m-%d)}", "2024-06-15"},
		{"{now}", "2024-06-15"},
		{"{modified_at(%H:%M:%S)}", "17:45:10"},
		{"{now(%Y)}-{now(%m)}", "2024-06"},
		{"{created_at(%d-%m-%Y)}_x", "01-01-2020_x"},
		{"{now()}", "{now()}"},
		{"no dates", "no dates"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			got, err := eval.Apply(tt.template, ".", "file1.txt")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateEvaluator_LooksUpOncePerCall(t *testing.T) {
	stamps := &stubTimestamps{}
	eval := NewDateEvaluator(stamps, nil)

	_, err := eval.Apply("{created_at}_{modified_at}", ".", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, stamps.calls)

	_, err = eval.Apply("{created_at}", ".", "b.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, stamps.calls, "timestamps must not be cached between files")
}

func TestDateEvaluator_NowSkipsLookup(t *testing.T) {
	stamps := &stubTimestamps{err: errors.New("should not be called")}
	eval := NewDateEvaluator(stamps, nil)

	_, err := eval.Apply("{now(%Y)}", ".", "gone.txt")
	require.NoError(t, err)
	assert.Equal(t, 0, stamps.calls)
}

func TestDateEvaluator_LookupFailure(t *testing.T) {
	stamps := &stubTimestamps{err: errors.New("no such file")}
	eval := NewDateEvaluator(stamps, nil)

	_, err := eval.Apply("{modified_at}", ".", "gone.txt")
	assert.EqualError(t, err, "no such file")
}

// ============================================================================
// Text Operation Tests
// ============================================================================

func TestApplyTextOperations(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"{file name|slugify}", "file-name"},
		{"{filename|lower}", "filename"},
		{"{filename|upper}", "FILENAME"},
		{"{filename|caps}", "Filename"},
		{"{fILENAME|capitalize}", "Filename"},
		{"{file name|title}", "File Name"},
		{"{file name|camel}", "fileName"},
		{"{file name|pascal}", "FileName"},
		{"{file name|snake}", "file_name"},
		{"{file name|kebab}", "file-name"},
		{"{fileName|snake}", "file_name"},
		{"{FileName|swapcase}", "fILEnAME"},
		{"{filename|reverse}", "emanelif"},
		{"{  filename  |strip}", "filename"},
		{"{filename|len}", "8"},
		{"{filename|invalid}", "filename"},
		{"{filename|bogus}", "filename"},
		{"pre_{abc|upper}_{DEF|lower}.txt", "pre_ABC_def.txt"},
		{"no markup", "no markup"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyTextOperations(tt.input))
		})
	}
}

func TestRegisterOperation_Extends(t *testing.T) {
	RegisterOperation("double", func(s string) string { return s + s })
	t.Cleanup(func() {
		delete(operations, "double")
		operationOrder = operationOrder[:len(operationOrder)-1]
	})

	assert.Equal(t, "abab", ApplyTextOperations("{ab|double}"))
	_, ok := LookupOperation("double")
	assert.True(t, ok)
}

// ============================================================================
// Keyword Tests
// ============================================================================

func TestKeywords(t *testing.T) {
	keywords := Keywords()

	ops := Operations()
	require.Len(t, keywords, len(ops)+3+len(DateKeywords)*len(DateFormats))

	assert.Equal(t, "|capitalize", keywords[0])
	assert.Contains(t, keywords, "|slugify")
	assert.Equal(t, "{counter}", keywords[len(ops)])
	assert.Equal(t, "{counter(1,1,0)}", keywords[len(ops)+1])
	assert.Equal(t, "{counter(0,1,0)}", keywords[len(ops)+2])
	assert.Equal(t, "{now}", keywords[len(ops)+3])
	assert.Equal(t, "{modified_at(%m-%d-%Y %H:%M:%S)}", keywords[len(keywords)-1])
}
