package placeholder

import "fmt"

// DateFormats are the format suffixes offered as hints for date keywords.
var DateFormats = []string{
	"",
	"(%Y)",
	"(%Y-%m-%d)",
	"(%d-%m-%Y)",
	"(%m-%d-%Y)",
	"(%H:%M:%S)",
	"(%Y-%m-%d %H:%M:%S)",
	"(%d-%m-%Y %H:%M:%S)",
	"(%m-%d-%Y %H:%M:%S)",
}

// Keywords returns the placeholder syntax hints offered to auto-suggest UIs:
// text operations, counter forms, then every date keyword with every format.
func Keywords() []string {
	ops := Operations()
	keywords := make([]string, 0, len(ops)+3+len(DateKeywords)*len(DateFormats))

	for _, op := range ops {
		keywords = append(keywords, "|"+op)
	}

	keywords = append(keywords,
		fmt.Sprintf("{%s}", CounterKeyword),
		fmt.Sprintf("{%s(1,1,0)}", CounterKeyword),
		fmt.Sprintf("{%s(0,1,0)}", CounterKeyword),
	)

	for _, key := range DateKeywords {
		for _, f := range DateFormats {
			keywords = append(keywords, fmt.Sprintf("{%s%s}", key, f))
		}
	}

	return keywords
}
